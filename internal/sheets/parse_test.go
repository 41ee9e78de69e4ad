package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csv := "ID,NOME,PRECO\n1,X-Burger,\"25,00\"\n2,Suco,\"12,50\"\n"

	records, err := ParseCSV(csv)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0]["ID"])
	assert.Equal(t, "X-Burger", records[0]["NOME"])
	// quoted field containing the delimiter survives intact
	assert.Equal(t, "25,00", records[0]["PRECO"])
	assert.Equal(t, "12,50", records[1]["PRECO"])
}

func TestParseCSVShortRows(t *testing.T) {
	records, err := ParseCSV("A,B,C\n1,2\n")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0]["B"])
	assert.Equal(t, "", records[0]["C"])
}

func TestParseCSVEmpty(t *testing.T) {
	records, err := ParseCSV("")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAssemble(t *testing.T) {
	data := &SourceData{
		Categories: []Record{
			{"ID": "c1", "NOME": "Lanches", "DESCRICAO": "Artesanais"},
			{"ID": "c2", "NOME": "Bebidas", "DESCRICAO": ""},
		},
		Items: []Record{
			{"ID": "p1", "CATEGORIA_ID": "c1", "NOME": "X-Burger", "PRECO": "25,00", "DISPONIVEL": "sim"},
			{"ID": "p2", "CATEGORIA_ID": "c1", "NOME": "Veggie", "PRECO": "22,00", "DISPONIVEL": "nao"},
			{"ID": "p3", "CATEGORIA_ID": "desconhecida", "NOME": "Órfão", "PRECO": "1,00", "DISPONIVEL": ""},
		},
		Config: []Record{
			{"NOME_EMPRESA": "Cantina da Praça", "SLOGAN": "Desde 1987"},
		},
		Hours: []Record{
			{"DIA_SEMANA_NUM": "2", "STATUS": "Aberto", "ABERTURA": "18:00", "FECHAMENTO": "23:00"},
			{"DIA_SEMANA_NUM": "x", "STATUS": "aberto", "ABERTURA": "18:00", "FECHAMENTO": "23:00"},
		},
		Neighborhoods: []Record{
			{"BAIRRO": "Centro", "TAXA": "5,00"},
		},
	}

	catalog, err := Assemble(data)
	require.NoError(t, err)

	require.Len(t, catalog.Categories, 2)
	assert.Len(t, catalog.Categories[0].Products, 2)
	assert.Empty(t, catalog.Categories[1].Products)
	// products outside any category still exist in the flat list
	assert.Len(t, catalog.Products, 3)

	assert.True(t, catalog.Products[0].Available)
	assert.False(t, catalog.Products[1].Available)
	assert.Equal(t, "25", catalog.Products[0].Price.String())

	assert.Equal(t, "Cantina da Praça", catalog.Profile.CompanyName)

	require.Contains(t, catalog.Hours, 2)
	assert.Equal(t, "aberto", catalog.Hours[2].Status)
	// malformed weekday rows are skipped
	assert.Len(t, catalog.Hours, 1)

	require.Len(t, catalog.Neighborhoods, 1)
	assert.Equal(t, "5", catalog.Neighborhoods[0].Fee.String())
}
