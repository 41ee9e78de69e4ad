package whatsapp

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cardapiolabs/cardapio/internal/checkout"
	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/shopspring/decimal"
)

const sendEndpoint = "https://api.whatsapp.com/send"

// ComposeMessage serializes the cart and checkout answers into the order text
// the receiving channel expects. The format is a compatibility contract: the
// option list segment is omitted entirely when a line has no options, and all
// currency values use the comma separator with two fractional digits.
func ComposeMessage(items []models.CartItem, state checkout.State) string {
	var b strings.Builder
	b.WriteString("Olá, gostaria de fazer um pedido!\n\n")
	b.WriteString("*Cliente:* " + state.CustomerName + "\n")
	b.WriteString("*Tipo:* " + state.DeliveryType + "\n")

	switch state.DeliveryType {
	case models.DeliveryTypeDelivery:
		b.WriteString("Endereço: " + state.Address + "\n")
	case models.DeliveryTypeLocal:
		b.WriteString("Mesa: " + state.TableNumber + "\n")
	}

	b.WriteString("\n*Itens:*\n")
	total := decimal.Zero
	for _, item := range items {
		b.WriteString("- " + strconv.Itoa(item.Quantity) + "x " + item.Name)
		if len(item.Options) > 0 {
			b.WriteString(" (" + strings.Join(item.OptionNames(), ", ") + ")")
		}
		lineTotal := item.LineTotal()
		b.WriteString(" - R$ " + models.FormatPrice(lineTotal) + "\n")
		total = total.Add(lineTotal)
	}

	b.WriteString("\n*Total:* R$ " + models.FormatPrice(total))
	return b.String()
}

// HandoffURL builds the external-channel URL carrying the percent-encoded
// message for the configured recipient.
func HandoffURL(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return sendEndpoint + "?phone=" + phone + "&text=" + encoded
}
