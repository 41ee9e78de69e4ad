package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/mitchellh/mapstructure"
)

type productRow struct {
	ID          string `mapstructure:"ID"`
	CategoryID  string `mapstructure:"CATEGORIA_ID"`
	Name        string `mapstructure:"NOME"`
	Description string `mapstructure:"DESCRICAO"`
	Price       string `mapstructure:"PRECO"`
	Image       string `mapstructure:"IMAGEM"`
	Available   string `mapstructure:"DISPONIVEL"`
}

type categoryRow struct {
	ID          string `mapstructure:"ID"`
	Name        string `mapstructure:"NOME"`
	Description string `mapstructure:"DESCRICAO"`
}

type configRow struct {
	CompanyName  string `mapstructure:"NOME_EMPRESA"`
	Slogan       string `mapstructure:"SLOGAN"`
	LogoURL      string `mapstructure:"LOGO_URL"`
	PrimaryColor string `mapstructure:"COR_PRIMARIA"`
}

type hoursRow struct {
	Weekday string `mapstructure:"DIA_SEMANA_NUM"`
	Status  string `mapstructure:"STATUS"`
	Open    string `mapstructure:"ABERTURA"`
	Close   string `mapstructure:"FECHAMENTO"`
}

type neighborhoodRow struct {
	Name string `mapstructure:"BAIRRO"`
	Fee  string `mapstructure:"TAXA"`
}

type couponRow struct {
	Code     string `mapstructure:"CODIGO"`
	Discount string `mapstructure:"DESCONTO"`
	Active   string `mapstructure:"ATIVO"`
}

// SourceData holds the parsed rows of every fetched sheet. A source that was
// skipped (empty URL) leaves a nil slice.
type SourceData struct {
	Items         []Record
	Categories    []Record
	Config        []Record
	Hours         []Record
	Neighborhoods []Record
	Coupons       []Record
}

func decodeRow(record Record, out interface{}) error {
	if err := mapstructure.Decode(map[string]string(record), out); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}

// Assemble turns raw sheet rows into the catalog: categories in sheet order,
// products attached by category ID, profile and hours from their sheets.
func Assemble(data *SourceData) (*models.Catalog, error) {
	catalog := &models.Catalog{Hours: make(models.WeekSchedule)}

	index := make(map[string]int)
	for _, record := range data.Categories {
		var row categoryRow
		if err := decodeRow(record, &row); err != nil {
			return nil, err
		}
		index[row.ID] = len(catalog.Categories)
		catalog.Categories = append(catalog.Categories, models.Category{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		})
	}

	for _, record := range data.Items {
		var row productRow
		if err := decodeRow(record, &row); err != nil {
			return nil, err
		}
		product := models.Product{
			ID:          row.ID,
			CategoryID:  row.CategoryID,
			Name:        row.Name,
			Description: row.Description,
			Price:       models.ParsePrice(row.Price),
			Image:       row.Image,
			Available:   strings.ToLower(row.Available) != "nao",
			Options:     ParseOptions(record),
		}
		catalog.Products = append(catalog.Products, product)
		if i, ok := index[product.CategoryID]; ok {
			catalog.Categories[i].Products = append(catalog.Categories[i].Products, product)
		}
	}

	if len(data.Config) > 0 {
		// All settings live in the first row.
		var row configRow
		if err := decodeRow(data.Config[0], &row); err != nil {
			return nil, err
		}
		catalog.Profile = models.BusinessProfile{
			CompanyName:  row.CompanyName,
			Slogan:       row.Slogan,
			LogoURL:      row.LogoURL,
			PrimaryColor: row.PrimaryColor,
		}
	}

	for _, record := range data.Hours {
		var row hoursRow
		if err := decodeRow(record, &row); err != nil {
			return nil, err
		}
		weekday, err := strconv.Atoi(strings.TrimSpace(row.Weekday))
		if err != nil || weekday < 0 || weekday > 6 {
			continue
		}
		catalog.Hours[weekday] = models.DaySchedule{
			Weekday: weekday,
			Status:  strings.ToLower(row.Status),
			Open:    row.Open,
			Close:   row.Close,
		}
	}

	for _, record := range data.Neighborhoods {
		var row neighborhoodRow
		if err := decodeRow(record, &row); err != nil {
			return nil, err
		}
		if row.Name == "" {
			continue
		}
		catalog.Neighborhoods = append(catalog.Neighborhoods, models.Neighborhood{
			Name: row.Name,
			Fee:  models.ParsePrice(row.Fee),
		})
	}

	for _, record := range data.Coupons {
		var row couponRow
		if err := decodeRow(record, &row); err != nil {
			return nil, err
		}
		if row.Code == "" {
			continue
		}
		catalog.Coupons = append(catalog.Coupons, models.Coupon{
			Code:     row.Code,
			Discount: models.ParsePrice(row.Discount),
			Active:   strings.ToLower(row.Active) == "sim",
		})
	}

	return catalog, nil
}
