package collector

import (
	"crypto/md5"
	"math/big"
	"time"

	"CaptionComposer/internal/calculator"
	"CaptionComposer/internal/model"
)

// Synthesize builds a deterministic stand-in snapshot from the ticker alone.
// The MD5 digest, read as a 128-bit unsigned integer h, gives RSI = 20 + h%60
// and price = 50 + h%500, so the same ticker always yields the same snapshot.
func Synthesize(ticker string, now time.Time) *model.Snapshot {
	sum := md5.Sum([]byte(ticker))
	h := new(big.Int).SetBytes(sum[:])
	rsi := 20 + new(big.Int).Mod(h, big.NewInt(60)).Int64()
	price := float64(50 + new(big.Int).Mod(h, big.NewInt(500)).Int64())

	target := calculator.Round2(price * 1.15)
	return &model.Snapshot{
		Ticker:          ticker,
		Price:           price,
		RSI:             float64(rsi),
		ConsensusRating: "hold",
		TargetPrice:     &target,
		NumAnalysts:     10,
		Entry:           calculator.Round2(price * 0.98),
		Exit:            calculator.Round2(price * 1.10),
		Stop:            calculator.Round2(price * 0.95),
		UpsidePct:       15.0,
		DataSource:      model.SourceSimulated,
		AsOf:            now,
	}
}
