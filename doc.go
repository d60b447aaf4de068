// Package payments is a transaction ledger engine. It replays a stream of
// client transactions and computes the final state of every client account.
//
// There are five kinds of transactions:
//   - Deposit credits the available funds of a client.
//   - Withdrawal debits them, if they are sufficient.
//   - Dispute freezes the amount of an earlier deposit into held funds.
//   - Resolve releases a disputed amount back to available funds.
//   - Chargeback removes a disputed amount and locks the account for good.
//
// A Processor applies transactions strictly in input order to a Store, which
// owns the accounts and the disputable transactions of a run. A record that
// breaks a business rule is rejected with a *RecordError and leaves the ledger
// untouched; a record that cannot be decoded at all is fatal and aborts the
// run. At the end of the run the Snapshot lists all accounts sorted by client
// id, ready to be encoded as CSV or JSONL.
//
// Amounts are fixed-point decimals with four fractional digits. Arithmetic
// never wraps: an out of range result is an error.
//
// This package serves as the foundational logic for the `pay` command-line
// tool.
package payments
