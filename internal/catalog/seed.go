package catalog

import "github.com/angelmondragon/lushka-backend/pkg/enums"

// DefaultProducts returns the storefront's product list.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "aceite-capilar",
			Name:        "Aceite Capilar",
			Description: "Aceite capilar ligero que controla frizz, sella puntas y aporta brillo intenso sin dejar grasa.",
			Price:       10000,
			Images:      []string{"/Productos/Capilar/AceiteCapilar.jpg"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"nutrición", "brillo", "tratamiento", "argán", "aguacate"},
			Stock:       50,
			SKU:         "CAP001",
		},
		{
			ID:          "acondicionador",
			Name:        "Acondicionador",
			Description: "Acondicionador nutritivo que deja tu cabello suave, brillante y manejable.\nFortalece la fibra capilar, hidrata profundamente y ayuda a reducir el frizz.",
			Price:       20000,
			Images:      []string{"/Productos/Capilar/Acondicionador.png"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"desenredante", "suavizante", "nutritivo", "miel", "rosas", "aminoácidos", "aguacate", "argán", "piña", "banano"},
			Stock:       40,
			SKU:         "CAP002",
		},
		{
			ID:          "aguacate",
			Name:        "Tratamiento de Aguacate",
			Description: "Tratamiento capilar de aguacate que nutre a profundidad y restaura cabellos dañados.\nAporta elasticidad, suavidad y brillo, ideal para cabello seco o decolorado.",
			Price:       15000,
			Images:      []string{"/Productos/Capilar/Aguacate.jpg"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"hidratación", "natural", "tratamiento", "aguacate", "nutrición", "reparación"},
			Stock:       30,
			Featured:    true,
			SKU:         "CAP003",
		},
		{
			ID:          "crema-peinar",
			Name:        "Crema para Peinar",
			Description: "Crema para peinar sin sal que define, hidrata y controla el frizz sin dejar el cabello pesado.\nPerfecta para uso diario, aporta brillo, suavidad y protección térmica.",
			Price:       10000,
			Images:      []string{"/Productos/Capilar/CremaPeinar.png"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"peinado", "brillo", "facilidad", "sin sal", "definición", "hidratación", "frizz"},
			Stock:       45,
			SKU:         "CAP005",
		},
		{
			ID:          "helado",
			Name:        "Tratamiento Helado Capilar",
			Description: "Tratamiento capilar tipo mascarilla helado.\nAporta suavidad extrema, brillo instantáneo y reparación profunda en cabellos resecos y maltratados.",
			Price:       15000,
			Images:      []string{"/Productos/Capilar/Helado.jpg"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"refrescante", "tratamiento", "suavidad", "reparación", "brillo"},
			Stock:       25,
			Featured:    true,
			SKU:         "CAP006",
		},
		{
			ID:          "nutella",
			Name:        "Tratamiento Nutella",
			Description: "Tratamiento capilar ultra nutritivo inspirado en la suavidad del chocolate.\nRepara puntas abiertas, hidrata profundamente y deja el cabello sedoso, brillante y manejable.",
			Price:       15000,
			Images:      []string{"/Productos/Capilar/Nutella.jpg"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"nutritiva", "dulce", "brillo", "reparación", "hidratación"},
			Stock:       20,
			SKU:         "CAP007",
		},
		{
			ID:          "shampoo",
			Name:        "Shampoo",
			Description: "Shampoo sin sal que limpia suavemente sin resecar, fortalece y revitaliza tu cabello.\nAyuda a reducir caída, aporta brillo y favorece el crecimiento saludable.",
			Price:       20000,
			Images:      []string{"/Productos/Capilar/shampoo.png"},
			Category:    enums.ProductCategoryCapilar,
			Tags:        []string{"limpieza", "profesional", "suavidad", "sin sal", "fortalece", "revitaliza", "crecimiento"},
			Stock:       60,
			SKU:         "CAP008",
		},
		{
			ID:          "almendra",
			Name:        "Aceite Corporal de Almendra",
			Description: "Aceite corporal hidratante, ayuda a reducir estrías y celulitis.\nAporta elasticidad y suavidad a la piel.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/almendra.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"almendra", "suavidad", "nutrición", "estrías", "celulitis", "elasticidad"},
			Stock:       35,
			Featured:    true,
			SKU:         "COR001",
		},
		{
			ID:          "boca",
			Name:        "Bálsamo Labial",
			Description: "Bálsamo labial hidratante con aromas irresistibles.\nRepara, suaviza y deja brillo natural.",
			Price:       8000,
			Images:      []string{"/Productos/Corporal/boca.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"labios", "hidratación", "bálsamo", "repara", "suaviza", "brillo"},
			Stock:       50,
			SKU:         "COR002",
		},
		{
			ID:          "chocolate",
			Name:        "Aceite Corporal de Chocolate",
			Description: "Aceite corporal para masajes, hidratante y afrodisíaco.\nTextura suave y aroma cálido irresistible.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/chocolate.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mascarilla", "chocolate", "antioxidante", "masajes", "afrodisíaco"},
			Stock:       30,
			SKU:         "COR003",
		},
		{
			ID:          "coco",
			Name:        "Aceite Corporal de Coco",
			Description: "Aceite corporal hidratante que mejora la textura de la piel.\nTambién funciona como desmaquillante natural.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/coco.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"coco", "hidratación", "natural", "desmaquillante"},
			Stock:       40,
			SKU:         "COR004",
		},
		{
			ID:          "crema",
			Name:        "Crema Corporal",
			Description: "Crema corporal hidratante de rápida absorción.\nSuaviza la piel, mejora textura y deja aroma duradero.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/crema.png"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"hidratación", "diario", "suave", "rápida absorción"},
			Stock:       45,
			SKU:         "COR005",
		},
		{
			ID:          "despigmentante",
			Name:        "Crema Despigmentante",
			Description: "Crema para unificar tono de piel",
			Price:       42000,
			Images:      []string{"/Productos/Corporal/despigmentante.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"despigmentante", "unificar", "piel"},
			Stock:       25,
			Featured:    true,
			SKU:         "COR006",
		},
		{
			ID:          "dulces",
			Name:        "Dulces Hidratantes",
			Description: "Caja de 18 dulces hidratantes para la piel.\nTextura cremosa, deja piel suave, brillante y perfumada.",
			Price:       10000,
			Images:      []string{"/Productos/Corporal/dulces.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mantequilla", "dulce", "hidratación", "cremosa"},
			Stock:       30,
			SKU:         "COR007",
		},
		{
			ID:          "feromonas",
			Name:        "Splash Corporal con Feromonas",
			Description: "Splash corporal con feromonas, aroma duradero y fijación alta.\nEstimula confianza, atractivo y energía personal.",
			Price:       10000,
			Images:      []string{"/Productos/Corporal/feromonas.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"feromonas", "perfume", "atracción", "confianza", "energía"},
			Stock:       20,
			SKU:         "COR008",
		},
		{
			ID:          "intimo",
			Name:        "Gel Íntimo",
			Description: "Gel para higiene íntima",
			Price:       18000,
			Images:      []string{"/Productos/Corporal/intimo.png"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"íntimo", "higiene", "suave"},
			Stock:       40,
			SKU:         "COR009",
		},
		{
			ID:          "mantequilla-azul",
			Name:        "Mantequilla Corporal Azul",
			Description: "Mantequilla corporal cremosa y ultra hidratante.\nNutre la piel, mejora elasticidad y deja aroma suave.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/mantequillaAzul.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mantequilla", "azul", "hidratación", "cremosa", "ultra hidratante"},
			Stock:       25,
			SKU:         "COR010",
		},
		{
			ID:          "mantequilla-morada",
			Name:        "Mantequilla Corporal Morada",
			Description: "Mantequilla corporal nutritiva ideal para piel seca.\nSuaviza, repara y deja textura sedosa y luminosa.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/mantequillaMorada.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mantequilla", "morada", "hidratación", "nutritiva", "piel seca"},
			Stock:       25,
			SKU:         "COR011",
		},
		{
			ID:          "mantequilla-rosada",
			Name:        "Mantequilla Corporal Rosada",
			Description: "Mantequilla corporal hidratante con acabado aterciopelado.\nAporta suavidad, brillo natural y perfume dulce.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/MantequillaRosada.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mantequilla", "rosa", "hidratación", "aterciopelado", "brillo natural"},
			Stock:       25,
			SKU:         "COR012",
		},
		{
			ID:          "naranja",
			Name:        "Aceite Corporal de Naranja",
			Description: "Aceite corporal aromático para masajes.\nHidrata, suaviza y aporta antioxidantes a la piel.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/naranja.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"naranja", "vitamina C", "energizante", "antioxidantes", "masajes"},
			Stock:       30,
			SKU:         "COR013",
		},
		{
			ID:          "per-destellos",
			Name:        "Perfume con Destellos",
			Description: "Perfume con destellos que deja brillo sutil en la piel.\nAroma glamuroso, dulce y femenino con larga duración.",
			Price:       13000,
			Images:      []string{"/Productos/Corporal/PerDestellos.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"piel", "destellos", "especial", "brillo", "glamuroso"},
			Stock:       20,
			SKU:         "COR014",
		},
		{
			ID:          "perfume",
			Name:        "Perfume",
			Description: "Perfume con fragancia duradera, elegante y envolvente.\nIdeal para uso diario y ocasiones especiales.",
			Price:       12000,
			Images:      []string{"/Productos/Corporal/perfume.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"fragancia", "larga duración", "elegante", "envolvente"},
			Stock:       35,
			SKU:         "COR015",
		},
		{
			ID:          "velas",
			Name:        "Velas Corporales",
			Description: "Velas corporales que se derriten en aceite tibio para masajes e hidratación profunda.\nDejan la piel suave, perfumada y luminosa.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/velas.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"velas", "aromáticas", "ambiente", "masajes", "hidratación"},
			Stock:       40,
			SKU:         "COR016",
		},
		{
			ID:          "zanahoria",
			Name:        "Aceite Corporal de Zanahoria",
			Description: "Aceite corporal hidratante que aporta brillo natural.\nBronceador natural y nutritivo para la piel.",
			Price:       15000,
			Images:      []string{"/Productos/Corporal/zanahoria.jpg"},
			Category:    enums.ProductCategoryCorporal,
			Tags:        []string{"mascarilla", "zanahoria", "vitaminas", "brillo natural", "bronceador"},
			Stock:       25,
			SKU:         "COR017",
		},
		{
			ID:          "espuma",
			Name:        "Espuma Facial",
			Description: "Espuma facial suave que limpia profundamente sin resecar.\nElimina impurezas, controla grasa y deja piel fresca.",
			Price:       15000,
			Images:      []string{"/Productos/Facial/espuma.jpg"},
			Category:    enums.ProductCategoryFacial,
			Tags:        []string{"limpieza", "espuma", "facial", "rosas", "aloe vera", "arroz", "carbón", "uva"},
			Stock:       35,
			Featured:    true,
			SKU:         "FAC001",
		},
		{
			ID:          "pestanas",
			Name:        "Tratamiento para Pestañas",
			Description: "Tratamiento natural para crecimiento de pestañas.\nHecho a base de aceite de coco, vitamina E, aceite de castor y aguacate.\nNutre, fortalece y estimula el crecimiento.",
			Price:       14000,
			Images:      []string{"/Productos/Facial/pestañas.jpg"},
			Category:    enums.ProductCategoryFacial,
			Tags:        []string{"pestañas", "crecimiento", "nutritivo", "coco", "vitamina E", "castor", "aguacate"},
			Stock:       25,
			Featured:    true,
			SKU:         "FAC002",
		},
		{
			ID:          "reto",
			Name:        "Reto de Amor Propio",
			Description: "Reto de amor propio diseñado para fortalecer autoestima.\nEjercicios diarios para conectar contigo y mejorar bienestar emocional.",
			Price:       30000,
			Images:      []string{"/Productos/Personal/reto.jpg"},
			Category:    enums.ProductCategoryPersonal,
			Tags:        []string{"reto", "desafío", "kit", "amor propio", "autoestima", "bienestar emocional"},
			Stock:       15,
			Featured:    true,
			SKU:         "PER001",
		},
	}
}

// DefaultBundles returns the storefront's bundles. Original prices are the
// sum of the constituents' list prices.
func DefaultBundles() []Bundle {
	return []Bundle{
		{
			Product: Product{
				ID:          "bucal",
				Name:        "Set de Bálsamos Bucales",
				Description: "Set de bálsamos bucales hidratantes.\nDeja labios suaves, frescos y deliciosos.",
				Price:       20000,
				Images:      []string{"/Productos/Combos/bucal.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"higiene", "bucal", "combo", "bálsamos", "hidratantes"},
				Stock:       15,
				Featured:    true,
				SKU:         "COM001",
			},
			OriginalPrice: 24000,
			Items: []BundleItem{
				{ProductID: "boca", Quantity: 3},
			},
		},
		{
			Product: Product{
				ID:          "carrito",
				Name:        "Set Aromático",
				Description: "Set aromático con fragancias únicas y elegantes.\nIdeal para regalo o uso diario.",
				Price:       25000,
				Images:      []string{"/Productos/Combos/Carrito.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"belleza", "esencial", "carrito", "aromático", "fragancias"},
				Stock:       5,
				Featured:    true,
				SKU:         "COM003",
			},
			OriginalPrice: 30000,
			Items: []BundleItem{
				{ProductID: "feromonas", Quantity: 3},
			},
		},
		{
			Product: Product{
				ID:          "casa-amarilla",
				Name:        "Kit Capilar Amarillo",
				Description: "Kit capilar sin sal: Shampoo + Acondicionador + Crema para peinar.\nCon pétalos de rosas, aminoácidos y miel.\nFortalece, nutre e hidrata profundamente.",
				Price:       40000,
				Images:      []string{"/Productos/Combos/CasaAmarilla.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"presentación", "regalo", "amarillo", "kit capilar", "sin sal", "rosas", "aminoácidos", "miel"},
				Stock:       12,
				SKU:         "COM004",
			},
			OriginalPrice: 50000,
			Items: []BundleItem{
				{ProductID: "shampoo", Quantity: 1},
				{ProductID: "acondicionador", Quantity: 1},
				{ProductID: "crema-peinar", Quantity: 1},
			},
		},
		{
			Product: Product{
				ID:          "casa-rosada",
				Name:        "Kit Capilar Rosa",
				Description: "Kit capilar sin sal: Shampoo + Acondicionador + Crema para peinar.\nCon cebolla y biotina.\nEvita la caída, estimula crecimiento y aporta brillo.",
				Price:       40000,
				Images:      []string{"/Productos/Combos/CasaRosada.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"presentación", "regalo", "rosa", "kit capilar", "sin sal", "cebolla", "biotina", "crecimiento"},
				Stock:       12,
				SKU:         "COM005",
			},
			OriginalPrice: 50000,
			Items: []BundleItem{
				{ProductID: "shampoo", Quantity: 1},
				{ProductID: "acondicionador", Quantity: 1},
				{ProductID: "crema-peinar", Quantity: 1},
			},
		},
		{
			Product: Product{
				ID:          "casa-verde",
				Name:        "Kit Capilar Verde",
				Description: "Kit capilar sin sal: Shampoo + Acondicionador + Crema para peinar.\nCon carbón y bambú.\nExfolia, limpia y purifica profundamente.",
				Price:       40000,
				Images:      []string{"/Productos/Combos/CasaVerde.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"presentación", "regalo", "verde", "kit capilar", "sin sal", "carbón", "bambú", "purifica"},
				Stock:       12,
				SKU:         "COM006",
			},
			OriginalPrice: 50000,
			Items: []BundleItem{
				{ProductID: "shampoo", Quantity: 1},
				{ProductID: "acondicionador", Quantity: 1},
				{ProductID: "crema-peinar", Quantity: 1},
			},
		},
		{
			Product: Product{
				ID:          "shine-box",
				Name:        "Shine Box",
				Description: "Caja con Splash con destellos, mantequilla iluminadora y fresita doble hidratante.\nPiel luminosa, suave y perfumada todo el día.",
				Price:       30000,
				Images:      []string{"/Productos/Combos/shineBox.jpg"},
				Category:    enums.ProductCategoryCombos,
				Tags:        []string{"premium", "brillo", "caja", "destellos", "mantequilla", "fresita", "luminosa"},
				Stock:       8,
				SKU:         "COM007",
			},
			OriginalPrice: 36000,
			Items: []BundleItem{
				{ProductID: "per-destellos", Quantity: 1},
				{ProductID: "mantequilla-rosada", Quantity: 1},
				{ProductID: "boca", Quantity: 1},
			},
		},
	}
}
