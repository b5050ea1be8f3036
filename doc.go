// Package bookvis computes time-varying financial balances from a ledger of
// accounts, transactions and multi-currency commodity prices.
//
// The core of the package is the historical balance engine: it aggregates
// account-tree balances as of arbitrary past dates, converting values into a
// common reporting currency using the stored price closest in time when no
// exact-date price exists. The Analysis type builds time series and
// currency-breakdown tables on top of it for presentation layers to consume.
package bookvis
