package sheets

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/shopspring/decimal"
)

const optionPrefix = "OPCIONAL_"

// groupBuilder accumulates the raw fields of one option group during the
// first decode pass, keyed by item index so column scan order doesn't matter.
type groupBuilder struct {
	name   string
	mode   string
	names  map[int]string
	prices map[int]decimal.Decimal
}

func newGroupBuilder() *groupBuilder {
	return &groupBuilder{
		mode:   string(models.SelectionSingle),
		names:  make(map[int]string),
		prices: make(map[int]decimal.Decimal),
	}
}

// ParseOptions decodes a product record's OPCIONAL_<group>_<field> columns
// into ordered option groups. Groups lacking a name or having zero valid
// items are discarded. An item is included only when its name field is
// non-empty; a missing or unparsable price delta defaults to zero.
func ParseOptions(record Record) []models.OptionGroup {
	builders := make(map[string]*groupBuilder)

	for key, value := range record {
		if !strings.HasPrefix(key, optionPrefix) {
			continue
		}
		rest := strings.TrimPrefix(key, optionPrefix)
		sep := strings.Index(rest, "_")
		if sep <= 0 || sep == len(rest)-1 {
			continue
		}
		token, field := rest[:sep], rest[sep+1:]

		builder, ok := builders[token]
		if !ok {
			builder = newGroupBuilder()
			builders[token] = builder
		}

		switch {
		case field == "NOME":
			builder.name = value
		case field == "TIPO":
			builder.mode = strings.ToLower(value)
		case strings.HasPrefix(field, "ITEM"):
			if n, err := strconv.Atoi(field[len("ITEM"):]); err == nil {
				builder.names[n] = value
			}
		case strings.HasPrefix(field, "PRECO"):
			if n, err := strconv.Atoi(field[len("PRECO"):]); err == nil {
				builder.prices[n] = models.ParsePrice(value)
			}
		}
	}

	tokens := make([]string, 0, len(builders))
	for token := range builders {
		tokens = append(tokens, token)
	}
	sortTokens(tokens)

	var groups []models.OptionGroup
	for _, token := range tokens {
		if group, ok := builders[token].build(); ok {
			groups = append(groups, group)
		}
	}
	return groups
}

// build is the validation pass: emit the finalized group or report discard.
func (b *groupBuilder) build() (models.OptionGroup, bool) {
	indices := make([]int, 0, len(b.names))
	for n := range b.names {
		indices = append(indices, n)
	}
	sort.Ints(indices)

	var items []models.OptionItem
	for _, n := range indices {
		name := b.names[n]
		if name == "" {
			continue
		}
		items = append(items, models.OptionItem{Name: name, Price: b.prices[n]})
	}

	if b.name == "" || len(items) == 0 {
		return models.OptionGroup{}, false
	}

	mode := models.SelectionSingle
	if b.mode == string(models.SelectionMultiple) {
		mode = models.SelectionMultiple
	}
	return models.OptionGroup{Name: b.name, Mode: mode, Items: items}, true
}

// sortTokens orders group tokens numerically when possible ("2" before "10"),
// falling back to lexical order for non-numeric tokens.
func sortTokens(tokens []string) {
	sort.Slice(tokens, func(i, j int) bool {
		a, errA := strconv.Atoi(tokens[i])
		b, errB := strconv.Atoi(tokens[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return tokens[i] < tokens[j]
	})
}
