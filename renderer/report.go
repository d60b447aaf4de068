package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/etnz/payments"
	md "github.com/nao1215/markdown"
)

// Report holds everything known about a run.
type Report struct {
	Snapshot   payments.Snapshot
	Stats      payments.Stats
	Rejections []*payments.RecordError
	Currency   string // Currency code used to display amounts, empty for plain amounts.
}

// ReportMarkdown renders the report as a markdown document.
func ReportMarkdown(r *Report) (string, error) {
	if err := ValidateCurrency(r.Currency); err != nil {
		return "", err
	}
	available, held, err := r.Snapshot.Totals()
	if err != nil {
		return "", err
	}
	total, err := available.Add(held)
	if err != nil {
		return "", fmt.Errorf("cannot sum total funds: %w", err)
	}
	amount := func(a payments.Amount) string { return formatAmount(a, r.Currency) }

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ledger Report")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Records"), md.Bold(strconv.Itoa(r.Stats.Records))},
		Rows: [][]string{
			{"Applied", strconv.Itoa(r.Stats.Applied)},
			{"Rejected", strconv.Itoa(r.Stats.Rejected)},
			{"Clients", strconv.Itoa(r.Snapshot.Len())},
			{"Locked", strconv.Itoa(len(slices.Collect(r.Snapshot.Locked())))},
			{"Available", amount(available)},
			{"Held", amount(held)},
			{"Total", amount(total)},
		},
	})

	if r.Snapshot.Len() > 0 {
		doc.H2("Accounts")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
			Header:    []string{"Client", "Available", "Held", "Total", "Locked"},
		}
		for a := range r.Snapshot.All() {
			locked := ""
			if a.Locked {
				locked = md.Bold("locked")
			}
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(int(a.ClientID)),
				amount(a.Available),
				amount(a.Held),
				amount(a.Total()),
				locked,
			})
		}
		doc.Table(table)
	}

	if len(r.Stats.ByRule) > 0 {
		doc.H2("Rejections by Rule")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Rule", "Count"},
		}
		for _, rule := range slices.Sorted(maps.Keys(r.Stats.ByRule)) {
			table.Rows = append(table.Rows, []string{rule, strconv.Itoa(r.Stats.ByRule[rule])})
		}
		doc.Table(table)
	}

	if len(r.Rejections) > 0 {
		doc.H2("Rejected Records")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
			Header:    []string{"Record", "Type", "Tx", "Client", "Reason"},
		}
		for _, e := range r.Rejections {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(e.Index),
				string(e.Type),
				strconv.FormatUint(uint64(e.TxID), 10),
				strconv.Itoa(int(e.ClientID)),
				e.Err.Error(),
			})
		}
		doc.Table(table)
	}

	return doc.String(), nil
}
