package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/contracts"
	md "github.com/nao1215/markdown"
)

// TableMarkdown renders the financial table of the contracts in force.
func TableMarkdown(t *contracts.Table) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Gestão Financeira de Contratos %d", t.Year))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Contratos ativos", "Total exercício", "Total a reforçar", "Total a anular"},
		Rows: [][]string{
			{fmt.Sprint(len(t.Rows)), t.Exercise.String(), t.ToReinforce.String(), t.ToCancel.String()},
		},
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{
			"Contrato", "Categoria", "Objeto", "Fornecedor", "Vigência fim",
			"Valor exercício", "Empenhado", "Liquidado + Pago", "A liquidar", "Gap",
			"Situação",
		},
	}
	for _, r := range t.Rows {
		table.Rows = append(table.Rows, []string{
			r.Number,
			cell(r.Category),
			cell(truncate(r.Object, 60)),
			cell(r.Supplier),
			r.End.String(),
			r.Exercise.String(),
			r.Totals.Committed.String(),
			r.Totals.SettledOrPaid().String(),
			r.Totals.ToSettle.String(),
			r.Gap.String(),
			status(r.Status),
		})
	}
	doc.H2("Contratos")
	if len(t.Rows) == 0 {
		doc.PlainText("Nenhum contrato vigente.")
	} else {
		doc.Table(table)
		doc.PlainTextf("Total: exercício %s, empenhado %s, gap %s.", t.Exercise, t.Committed, t.Gap)
	}

	if len(t.Errors) > 0 {
		doc.H2("Contratos com erro")
		var items []string
		for _, e := range t.Errors {
			items = append(items, cell(e.Error()))
		}
		doc.BulletList(items...)
	}
	return doc.String()
}

// status highlights the statuses calling for an action.
func status(s contracts.Status) string {
	if s == contracts.StatusOK {
		return string(s)
	}
	return md.Bold(string(s))
}
