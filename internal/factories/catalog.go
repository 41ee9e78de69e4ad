package factories

import (
	"math/rand"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

// CatalogFactory generates a realistic demo catalog for runs without sheet
// URLs configured.
type CatalogFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

var demoCategories = []struct {
	name        string
	description string
	items       []string
}{
	{"Lanches", "Artesanais, feitos na hora", []string{"X-Burger Clássico", "X-Bacon Duplo", "Veggie Burger", "Frango Crocante"}},
	{"Pizzas", "Massa fina, forno a lenha", []string{"Margherita", "Calabresa", "Quatro Queijos", "Portuguesa"}},
	{"Bebidas", "Geladas", []string{"Refrigerante Lata", "Suco Natural", "Água com Gás", "Cerveja Artesanal"}},
	{"Sobremesas", "Para fechar bem", []string{"Pudim", "Petit Gateau", "Açaí na Tigela"}},
}

func (cf *CatalogFactory) CreateCatalog() *models.Catalog {
	catalog := &models.Catalog{
		Profile: models.BusinessProfile{
			CompanyName: cf.fake.Company().Name(),
			Slogan:      cf.fake.Company().CatchPhrase(),
		},
		Hours: cf.createWeekSchedule(),
	}

	for _, demo := range demoCategories {
		category := models.Category{
			ID:          cuid.New(),
			Name:        demo.name,
			Description: demo.description,
		}
		for _, itemName := range demo.items {
			product := cf.createProduct(category.ID, itemName)
			category.Products = append(category.Products, product)
			catalog.Products = append(catalog.Products, product)
		}
		catalog.Categories = append(catalog.Categories, category)
	}
	return catalog
}

func (cf *CatalogFactory) createProduct(categoryID, name string) models.Product {
	product := models.Product{
		ID:          cuid.New(),
		CategoryID:  categoryID,
		Name:        name,
		Description: cf.fake.Lorem().Sentence(8),
		Price:       cf.price(12, 60),
		Available:   cf.rng.Float64() > 0.1,
	}
	if cf.rng.Float64() < 0.5 {
		product.Options = append(product.Options, models.OptionGroup{
			Name: "Tamanho",
			Mode: models.SelectionSingle,
			Items: []models.OptionItem{
				{Name: "Pequeno", Price: decimal.Zero},
				{Name: "Médio", Price: cf.price(2, 5)},
				{Name: "Grande", Price: cf.price(5, 10)},
			},
		})
	}
	if cf.rng.Float64() < 0.4 {
		product.Options = append(product.Options, models.OptionGroup{
			Name: "Adicionais",
			Mode: models.SelectionMultiple,
			Items: []models.OptionItem{
				{Name: "Queijo Extra", Price: cf.price(2, 4)},
				{Name: "Bacon", Price: cf.price(3, 6)},
				{Name: "Molho da Casa", Price: cf.price(1, 3)},
			},
		})
	}
	return product
}

func (cf *CatalogFactory) createWeekSchedule() models.WeekSchedule {
	schedule := make(models.WeekSchedule)
	for day := 0; day <= 6; day++ {
		row := models.DaySchedule{
			Weekday: day,
			Status:  "aberto",
			Open:    "18:00",
			Close:   "23:00",
		}
		// fecha às segundas
		if day == 1 {
			row.Status = "fechado"
		}
		schedule[day] = row
	}
	return schedule
}

func (cf *CatalogFactory) price(min, max int) decimal.Decimal {
	cents := cf.rng.Intn((max-min)*100+1) + min*100
	return decimal.New(int64(cents), -2)
}
