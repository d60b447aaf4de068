package cmd

import (
	"flag"

	"github.com/etnz/payments/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictInput  = predict.Files("*.csv")
	predictFormat = predict.Set{"csv", "jsonl"}
)

// ledgerPredictors returns the predictors of the ledgerFlags.
func ledgerPredictors(more map[string]complete.Predictor) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{
		"format":              predictFormat,
		"dispute-withdrawals": predict.Nothing,
		"redispute":           predict.Nothing,
		"strict-accounts":     predict.Nothing,
	}
	for k, v := range more {
		flags[k] = v
	}
	return flags
}

// Completion returns the shell completion of the application.
//
// Global flags are read from 'top' so that they stay in sync with their
// definition.
func Completion(top *flag.FlagSet) *complete.Command {
	global := make(map[string]complete.Predictor)
	top.VisitAll(func(f *flag.Flag) {
		global[f.Name] = predict.Something
	})
	global["env"] = predict.Files("*")
	global["log-level"] = predict.Set{"debug", "info", "warn", "error"}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"process": {
				Flags: ledgerPredictors(map[string]complete.Predictor{
					"o":   predict.Set{"csv", "json"},
					"out": predict.Files("*"),
				}),
				Args: predictInput,
			},
			"report": {
				Flags: ledgerPredictors(map[string]complete.Predictor{
					"currency": predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
					"out":      predict.Files("*.md"),
				}),
				Args: predictInput,
			},
			"query": {
				Flags: ledgerPredictors(map[string]complete.Predictor{
					"e":   predict.Something,
					"out": predict.Files("*"),
				}),
				Args: predictInput,
			},
			"fmt": {
				Flags: map[string]complete.Predictor{
					"format": predictFormat,
					"to":     predictFormat,
					"out":    predict.Files("*"),
				},
				Args: predict.Files("*"),
			},
			"topic": {
				Flags: map[string]complete.Predictor{
					"list": predict.Nothing,
					"out":  predict.Files("*"),
				},
				Args: predict.Set(append([]string{docs.All, docs.Readme}, docs.Names()...)),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: global,
		Args:  predictInput,
	}
}
