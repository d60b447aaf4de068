package payments

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// marshalTx writes the JSON object of a transaction with keys in input column
// order: type, client, tx and, for funding transactions, amount.
func marshalTx(tx Transaction) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", tx.What())
	w.EmbedFrom(baseTx{ClientID: tx.Client(), TxID: tx.ID()})
	if a, ok := AmountOf(tx); ok {
		w.Append("amount", a)
	}
	return w.MarshalJSON()
}

func (t Deposit) MarshalJSON() ([]byte, error)    { return marshalTx(t) }
func (t Withdrawal) MarshalJSON() ([]byte, error) { return marshalTx(t) }
func (t Dispute) MarshalJSON() ([]byte, error)    { return marshalTx(t) }
func (t Resolve) MarshalJSON() ([]byte, error)    { return marshalTx(t) }
func (t Chargeback) MarshalJSON() ([]byte, error) { return marshalTx(t) }

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %d: %w", tx.ID(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactionsCSV writes transactions in the CSV input format. The amount
// column is left empty for disputes, resolves and chargebacks.
func EncodeTransactionsCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tx := range txs {
		amount := ""
		if a, ok := AmountOf(tx); ok {
			amount = a.String()
		}
		row := []string{
			string(tx.What()),
			strconv.FormatUint(uint64(tx.Client()), 10),
			strconv.FormatUint(uint64(tx.ID()), 10),
			amount,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", tx.ID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeTransactions writes transactions in the given format.
func EncodeTransactions(w io.Writer, txs []Transaction, format Format) error {
	switch format {
	case FormatCSV, "":
		return EncodeTransactionsCSV(w, txs)
	case FormatJSONL:
		for _, tx := range txs {
			if err := EncodeTransaction(w, tx); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
