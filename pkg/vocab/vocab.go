// Package vocab holds the canonical vocabularies for categorical sales fields
// and the display-name map applied to headers on export. Keys are in folded
// form (lowercase, trimmed, accents already stripped by the sanitizer).
package vocab

// Table maps folded synonyms to a canonical value. Values not found map to
// Fallback, or pass through unchanged when Fallback is empty.
//
// When a config file sets Entries they are merged into the defaults unless
// Replace is also set, in which case the file's entries are the whole table.
type Table struct {
	Entries  map[string]string `yaml:"entries" toml:"entries" json:"entries"`
	Fallback string            `yaml:"fallback" toml:"fallback" json:"fallback"`
	Replace  bool              `yaml:"replace" toml:"replace" json:"replace"`
}

// Lookup resolves a folded value.
func (t Table) Lookup(v string) string {
	if c, ok := t.Entries[v]; ok {
		return c
	}
	if t.Fallback != "" {
		return t.Fallback
	}
	return v
}

// Canonical returns the closed set of values Lookup can produce. For tables
// without a fallback the set is open and ok is false.
func (t Table) Canonical() (vals []string, ok bool) {
	seen := map[string]struct{}{}
	for _, c := range t.Entries {
		if _, dup := seen[c]; !dup {
			seen[c] = struct{}{}
			vals = append(vals, c)
		}
	}
	if t.Fallback == "" {
		return vals, false
	}
	if _, dup := seen[t.Fallback]; !dup {
		vals = append(vals, t.Fallback)
	}
	return vals, true
}

const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusPending  = "Pending"
	StatusUnknown  = "Unknown"

	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Status is the order-status vocabulary.
func Status() Table {
	return Table{
		Entries: map[string]string{
			"aprovado":  StatusApproved, // pt
			"aprovada":  StatusApproved,
			"ap":        StatusApproved, // common abbreviation in exports
			"approved":  StatusApproved,
			"reprovado": StatusRejected, // pt
			"rejeitado": StatusRejected,
			"rejected":  StatusRejected,
			"pendente":  StatusPending, // pt
			"pending":   StatusPending,
		},
		Fallback: StatusUnknown,
	}
}

// Product collapses product-name variants. Unlisted names are already canonical.
func Product() Table {
	return Table{
		Entries: map[string]string{
			"tv led":      "tv",
			"tv lcd":      "tv",
			"smartphone":  "celular",
			"celulares":   "celular",
			"notebook":    "laptop",
			"notebooks":   "laptop",
			"impresora":   "impressora", // misspelling
			"impressores": "impressora", // misspelling
		},
	}
}

// Payment collapses payment-method variants.
func Payment() Table {
	return Table{
		Entries: map[string]string{
			"cartao":                 PaymentCard,
			"credito":                PaymentCard,
			"debito":                 PaymentCard,
			"cartao de credito":      PaymentCard,
			"cartao de debito":       PaymentCard,
			"transferencia":          PaymentTransfer,
			"transferencia bancaria": PaymentTransfer,
			"dinheiro":               "dinheiro", // cash
			"pix":                    "pix",
			"boleto":                 "boleto",
		},
		Fallback: PaymentOther,
	}
}

// DisplayHeaders maps canonical column names to export headers.
func DisplayHeaders() map[string]string {
	return map[string]string{
		"id_da_compra":       "Id_da_compra",
		"data":               "Data",
		"data_venda":         "Data_venda",
		"data_entrega":       "Data_entrega",
		"hora":               "Hora",
		"cliente":            "Cliente",
		"produto":            "Produto",
		"valor":              "Valor",
		"quantidade":         "Quantidade",
		"total":              "Total",
		"status":             "Status",
		"cidade":             "Cidade",
		"estado":             "Estado",
		"pais":               "Pais",
		"cep":                "Cep",
		"frete":              "Frete",
		"pagamento":          "Pagamento",
		"forma_pagamento":    "Forma_pagamento",
		"forma_de_pagamento": "Forma_de_pagamento",
		"vendedor":           "Vendedor",
		"marca":              "Marca",
		"ano_venda":          "Ano_venda",
		"mes_venda":          "Mes_venda",
	}
}

// Display returns the export header for a canonical name.
func Display(headers map[string]string, name string) string {
	if d, ok := headers[name]; ok {
		return d
	}
	return name
}
