package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/contracts"
	md "github.com/nao1215/markdown"
)

// InvoicesMarkdown renders the invoices of a contract.
func InvoicesMarkdown(number string, invoices []contracts.Invoice) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Faturas do contrato %s", number))
	if len(invoices) == 0 {
		doc.PlainText("Sem faturas.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Número", "Referência", "Emissão", "Vencimento", "Valor", "Valor líquido", "Situação"},
	}
	var total contracts.Amount
	for _, inv := range invoices {
		table.Rows = append(table.Rows, []string{
			cell(inv.Number),
			inv.Reference,
			inv.Issued.String(),
			inv.Due.String(),
			inv.Value.String(),
			inv.Net.String(),
			cell(inv.Situation),
		})
		total = total.Add(inv.Value)
	}
	doc.Table(table)
	doc.PlainTextf("%d faturas, total %s.", len(invoices), total)
	return doc.String()
}
