package storefront

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cardapiolabs/cardapio/internal/checkout"
	"github.com/cardapiolabs/cardapio/internal/models"
)

// Terminal is a text frontend over the storefront. It is purely a render
// layer: it draws state and forwards user actions into the core, triggering
// no business logic of its own.
type Terminal struct {
	sf  *Storefront
	in  *bufio.Scanner
	out io.Writer

	// listing maps the numbers shown on screen to product IDs.
	listing []string
}

func NewTerminal(sf *Storefront, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		sf:  sf,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (t *Terminal) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

// Run drives the interactive loop until EOF or the sair command.
func (t *Terminal) Run(ctx context.Context) error {
	t.printHeader()
	t.printMenu("")

	for {
		t.printf("\n> ")
		if !t.in.Scan() {
			return t.in.Err()
		}
		line := strings.TrimSpace(t.in.Text())
		if line == "" {
			continue
		}
		cmd, arg := splitCommand(line)
		if cmd == "sair" {
			return nil
		}
		t.dispatch(ctx, cmd, arg)
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func (t *Terminal) dispatch(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "menu":
		t.printMenu("")
	case "buscar":
		t.printMenu(arg)
	case "abrir":
		t.openProduct(arg)
	case "opcao":
		t.toggleOption(arg)
	case "qtd":
		t.changeQuantity(arg)
	case "adicionar":
		t.addToCart(ctx)
	case "fechar":
		t.sf.CloseProduct()
	case "carrinho":
		t.printCart()
	case "remover":
		t.removeItem(ctx, arg)
	case "limpar":
		t.sf.Cart().Clear(ctx)
		t.printCart()
	case "pedido":
		t.openCheckout()
	case "tipo":
		t.setDeliveryType(arg)
	case "endereco":
		t.setDetail(arg, true)
	case "mesa":
		t.setDetail(arg, false)
	case "nome":
		t.setName(arg)
	case "resumo":
		t.printSummary()
	case "finalizar":
		t.finalize(ctx)
	case "ajuda":
		t.printHelp()
	default:
		t.printf("comando desconhecido: %s (digite 'ajuda')\n", cmd)
	}
}

func (t *Terminal) printHeader() {
	catalog := t.sf.Catalog()
	if catalog == nil {
		return
	}
	t.printf("%s\n", catalog.Profile.CompanyName)
	if catalog.Profile.Slogan != "" {
		t.printf("%s\n", catalog.Profile.Slogan)
	}
	status := t.sf.HoursStatus()
	if status.Detail != "" {
		t.printf("%s · %s\n", status.Label, status.Detail)
	} else {
		t.printf("%s\n", status.Label)
	}
}

func (t *Terminal) printMenu(query string) {
	catalog := t.sf.Catalog()
	if catalog == nil {
		t.printf("cardápio não carregado\n")
		return
	}

	t.listing = t.listing[:0]
	if query != "" {
		matches := catalog.Search(query)
		if len(matches) == 0 {
			t.printf("Nenhum produto encontrado para %q.\n", query)
			return
		}
		for _, p := range matches {
			t.printProductLine(p)
		}
		return
	}

	for _, category := range catalog.Categories {
		t.printf("\n== %s ==\n", category.Name)
		if category.Description != "" {
			t.printf("%s\n", category.Description)
		}
		for _, p := range category.Products {
			t.printProductLine(p)
		}
	}
}

func (t *Terminal) printProductLine(p models.Product) {
	t.listing = append(t.listing, p.ID)
	marker := ""
	if !p.Available {
		marker = " (indisponível)"
	}
	t.printf("%3d. %s — R$ %s%s\n", len(t.listing), p.Name, models.FormatPrice(p.Price), marker)
}

func (t *Terminal) openProduct(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(t.listing) {
		t.printf("informe o número do item mostrado no menu\n")
		return
	}
	if err := t.sf.OpenProduct(t.listing[n-1]); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printDetail()
}

func (t *Terminal) printDetail() {
	sess := t.sf.Session()
	if sess == nil {
		return
	}
	product := sess.Product()
	t.printf("\n%s\n%s\n", product.Name, product.Description)
	for _, group := range product.Options {
		kind := "escolha um"
		if group.Multiple() {
			kind = "escolha vários"
		}
		t.printf("[%s] (%s)\n", group.Name, kind)
		for _, item := range group.Items {
			mark := " "
			if sess.IsSelected(group.Name, item.Name) {
				mark = "x"
			}
			t.printf("  [%s] %s + R$ %s\n", mark, item.Name, models.FormatPrice(item.Price))
		}
	}
	t.printf("Quantidade: %d · Total: R$ %s\n", sess.Quantity(), models.FormatPrice(sess.CurrentPrice()))
	t.printf("(opcao <grupo>/<item>, qtd <delta>, adicionar, fechar)\n")
}

func (t *Terminal) toggleOption(arg string) {
	parts := strings.SplitN(arg, "/", 2)
	if len(parts) != 2 {
		t.printf("use: opcao <grupo>/<item>\n")
		return
	}
	if err := t.sf.ToggleOption(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printDetail()
}

func (t *Terminal) changeQuantity(arg string) {
	delta, err := strconv.Atoi(arg)
	if err != nil {
		t.printf("use: qtd <delta>\n")
		return
	}
	if err := t.sf.AddQuantity(delta); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printDetail()
}

func (t *Terminal) addToCart(ctx context.Context) {
	if err := t.sf.AddToCart(ctx); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printCart()
}

func (t *Terminal) printCart() {
	items := t.sf.Cart().Items()
	if len(items) == 0 {
		t.printf("Seu carrinho está vazio.\n")
		return
	}
	t.printf("\nCarrinho:\n")
	for i, item := range items {
		t.printf("%3d. %dx %s", i+1, item.Quantity, item.Name)
		if len(item.Options) > 0 {
			t.printf(" (%s)", strings.Join(item.OptionNames(), ", "))
		}
		t.printf(" — R$ %s\n", models.FormatPrice(item.LineTotal()))
	}
	totals := t.sf.Cart().Totals()
	t.printf("%d itens · Total: R$ %s\n", totals.Items, models.FormatPrice(totals.Price))
}

func (t *Terminal) removeItem(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		t.printf("use: remover <n>\n")
		return
	}
	t.sf.Cart().Remove(ctx, n-1)
	t.printCart()
}

func (t *Terminal) openCheckout() {
	if err := t.sf.OpenCheckout(); err != nil {
		t.printf("Seu carrinho está vazio!\n")
		return
	}
	t.printf("Tipo de recebimento: 'tipo delivery' ou 'tipo local'\n")
}

func (t *Terminal) setDeliveryType(arg string) {
	flow := t.sf.Checkout()
	if flow == nil {
		t.printf("abra o pedido primeiro (comando 'pedido')\n")
		return
	}
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg != models.DeliveryTypeDelivery && arg != models.DeliveryTypeLocal {
		t.printf("use: tipo delivery|local\n")
		return
	}
	flow.SetDeliveryType(arg)
	flow.Next(checkout.StepDetails)
	if arg == models.DeliveryTypeDelivery {
		t.printf("informe o endereço: endereco <texto>\n")
	} else {
		t.printf("informe a mesa: mesa <número>\n")
	}
}

func (t *Terminal) setDetail(arg string, delivery bool) {
	flow := t.sf.Checkout()
	if flow == nil {
		t.printf("abra o pedido primeiro (comando 'pedido')\n")
		return
	}
	if delivery {
		flow.SetAddress(arg)
	} else {
		flow.SetTableNumber(arg)
	}
	t.printf("agora informe seu nome: nome <texto>\n")
}

func (t *Terminal) setName(arg string) {
	flow := t.sf.Checkout()
	if flow == nil {
		t.printf("abra o pedido primeiro (comando 'pedido')\n")
		return
	}
	flow.SetCustomerName(arg)
	flow.Next(checkout.StepReview)
	t.printSummary()
}

func (t *Terminal) printSummary() {
	flow := t.sf.Checkout()
	if flow == nil {
		t.printf("abra o pedido primeiro (comando 'pedido')\n")
		return
	}
	summary := flow.Summary()
	t.printCart()
	t.printf("Subtotal: R$ %s\n", models.FormatPrice(summary.Subtotal))
	t.printf("Entrega:  R$ %s\n", models.FormatPrice(summary.DeliveryFee))
	t.printf("Desconto: R$ %s\n", models.FormatPrice(summary.Discount))
	t.printf("Total:    R$ %s\n", models.FormatPrice(summary.Total))
	t.printf("(finalizar para enviar o pedido)\n")
}

func (t *Terminal) finalize(ctx context.Context) {
	url, err := t.sf.Finalize(ctx)
	if err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printf("\nAbra o link para enviar seu pedido:\n%s\n", url)
}

func (t *Terminal) printHelp() {
	t.printf(`comandos:
  menu                 mostra o cardápio
  buscar <texto>       busca produtos
  abrir <n>            abre um produto
  opcao <grupo>/<item> marca/desmarca um opcional
  qtd <delta>          ajusta a quantidade
  adicionar            adiciona ao carrinho
  fechar               fecha o produto aberto
  carrinho             mostra o carrinho
  remover <n>          remove um item
  limpar               esvazia o carrinho
  pedido               inicia o checkout
  tipo delivery|local  tipo de recebimento
  endereco <texto>     endereço de entrega
  mesa <número>        número da mesa
  nome <texto>         nome do cliente
  resumo               resumo do pedido
  finalizar            gera o link do WhatsApp
  sair                 encerra
`)
}
