package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	itemsCSV = "ID,CATEGORIA_ID,NOME,DESCRICAO,PRECO,IMAGEM,DISPONIVEL,OPCIONAL_1_NOME,OPCIONAL_1_TIPO,OPCIONAL_1_ITEM1,OPCIONAL_1_PRECO1,OPCIONAL_1_ITEM2,OPCIONAL_1_PRECO2\n" +
		"p1,c1,X-Burger,Pão e carne,\"25,00\",,sim,Tamanho,unico,Médio,\"0,00\",Grande,\"5,00\"\n" +
		"p2,c2,Suco de Laranja,,\"12,50\",,sim,,,,,,\n" +
		"p3,c1,X-Tudo,,\"32,00\",,nao,,,,,,\n"

	categoriesCSV = "ID,NOME,DESCRICAO\nc1,Lanches,\nc2,Bebidas,\n"

	configCSV = "NOME_EMPRESA,SLOGAN,LOGO_URL,COR_PRIMARIA\nLanchonete da Praça,O melhor da cidade,,#ff4400\n"

	hoursCSV = "DIA_SEMANA_NUM,STATUS,ABERTURA,FECHAMENTO\n" +
		"0,aberto,00:00,24:00\n1,aberto,00:00,24:00\n2,aberto,00:00,24:00\n" +
		"3,aberto,00:00,24:00\n4,aberto,00:00,24:00\n5,aberto,00:00,24:00\n6,aberto,00:00,24:00\n"
)

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(body))
		})
	}
	serve("/items", itemsCSV)
	serve("/categories", categoriesCSV)
	serve("/config", configCSV)
	serve("/hours", hoursCSV)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, server *httptest.Server) *models.Config {
	t.Helper()
	return &models.Config{
		Sheets: models.SheetURLs{
			Items:      server.URL + "/items",
			Categories: server.URL + "/categories",
			Config:     server.URL + "/config",
			Hours:      server.URL + "/hours",
		},
		Timezone:      "America/Sao_Paulo",
		WhatsAppPhone: "5511999998888",
		FetchTimeout:  5 * time.Second,
		Storage:       "file",
		StoragePath:   t.TempDir(),
		CartSlot:      "userCart",
		OrderLog: models.OrderLogConfig{
			Output:   "file",
			FilePath: t.TempDir(),
			Topic:    "order_events",
		},
	}
}

func loadedStorefront(t *testing.T, cfg *models.Config) *Storefront {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	sf, err := New(cfg, log)
	require.NoError(t, err)
	require.NoError(t, sf.Load(context.Background()))
	return sf
}

func TestLoadAssemblesCatalog(t *testing.T) {
	sf := loadedStorefront(t, testConfig(t, sheetServer(t)))

	catalog := sf.Catalog()
	require.NotNil(t, catalog)
	assert.Len(t, catalog.Categories, 2)
	assert.Len(t, catalog.Products, 3)
	assert.Equal(t, "Lanchonete da Praça", catalog.Profile.CompanyName)
	assert.True(t, sf.HoursStatus().Open)
}

func TestLoadFailsWhenAnySourceFails(t *testing.T) {
	server := sheetServer(t)
	cfg := testConfig(t, server)
	cfg.Sheets.Hours = server.URL + "/missing"

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	sf, err := New(cfg, log)
	require.NoError(t, err)

	err = sf.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "não foi possível carregar o cardápio")
	assert.Nil(t, sf.Catalog())
}

func TestOpenProductRules(t *testing.T) {
	sf := loadedStorefront(t, testConfig(t, sheetServer(t)))

	assert.ErrorIs(t, sf.OpenProduct("nope"), ErrUnknownID)
	assert.ErrorIs(t, sf.OpenProduct("p3"), ErrUnavailable)

	require.NoError(t, sf.OpenProduct("p1"))
	require.NotNil(t, sf.Session())
	assert.Equal(t, "25,00", sf.Render().SessionPrice)

	sf.CloseProduct()
	assert.Nil(t, sf.Session())
	assert.Empty(t, sf.Render().SessionPrice)
}

func TestToggleUnknownOptionIsIgnored(t *testing.T) {
	sf := loadedStorefront(t, testConfig(t, sheetServer(t)))
	require.NoError(t, sf.OpenProduct("p1"))

	require.NoError(t, sf.ToggleOption("Sabor", "Grande"))
	require.NoError(t, sf.ToggleOption("Tamanho", "Gigante"))
	assert.Equal(t, "25,00", sf.Render().SessionPrice)

	require.NoError(t, sf.ToggleOption("Tamanho", "Grande"))
	assert.Equal(t, "30,00", sf.Render().SessionPrice)
}

func TestOrderLifecycle(t *testing.T) {
	server := sheetServer(t)
	cfg := testConfig(t, server)
	sf := loadedStorefront(t, cfg)
	ctx := context.Background()

	assert.ErrorIs(t, sf.OpenCheckout(), ErrEmptyCart)

	require.NoError(t, sf.OpenProduct("p1"))
	require.NoError(t, sf.AddToCart(ctx))
	require.NoError(t, sf.OpenProduct("p2"))
	require.NoError(t, sf.AddToCart(ctx))

	totals := sf.Cart().Totals()
	assert.Equal(t, 2, totals.Items)
	assert.Equal(t, "37,50", models.FormatPrice(totals.Price))

	require.NoError(t, sf.OpenCheckout())
	flow := sf.Checkout()
	require.NotNil(t, flow)
	flow.SetDeliveryType(models.DeliveryTypeLocal)
	flow.SetTableNumber("12")
	flow.SetCustomerName("Maria")

	url, err := sf.Finalize(ctx)
	require.NoError(t, err)
	assert.Contains(t, url, "https://api.whatsapp.com/send?phone=5511999998888&text=")
	assert.Contains(t, url, "Mesa%3A%2012")
	assert.Contains(t, url, "37%2C50")

	assert.Equal(t, 0, sf.Cart().Len())
	assert.Nil(t, sf.Checkout())

	// the order event was appended to the configured log
	data, err := os.ReadFile(filepath.Join(cfg.OrderLog.FilePath, "order_events.jsonl"))
	require.NoError(t, err)
	var record models.OrderRecord
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "Maria", record.CustomerName)
	assert.Equal(t, models.DeliveryTypeLocal, record.DeliveryType)
	assert.Equal(t, "12", record.TableNumber)
	assert.Equal(t, models.OrderStatusPlaced, record.Status)
	assert.Len(t, record.Items, 2)
	assert.Equal(t, "37,50", models.FormatPrice(record.Total))
}

func TestFinalizeWithoutCheckout(t *testing.T) {
	sf := loadedStorefront(t, testConfig(t, sheetServer(t)))

	_, err := sf.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestCartSurvivesRestart(t *testing.T) {
	server := sheetServer(t)
	cfg := testConfig(t, server)
	ctx := context.Background()

	first := loadedStorefront(t, cfg)
	require.NoError(t, first.OpenProduct("p1"))
	require.NoError(t, first.ToggleOption("Tamanho", "Grande"))
	require.NoError(t, first.AddToCart(ctx))

	second := loadedStorefront(t, cfg)
	require.Equal(t, 1, second.Cart().Len())
	item := second.Cart().Items()[0]
	assert.Equal(t, "X-Burger", item.Name)
	assert.Equal(t, []string{"Grande"}, item.OptionNames())
	assert.Equal(t, "30,00", models.FormatPrice(second.Cart().Totals().Price))
}
