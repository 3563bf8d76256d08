package usecase

import "errors"

// ErrNoCandles is returned when neither the store nor the market provider has bars for a symbol.
var ErrNoCandles = errors.New("no candles for symbol")
