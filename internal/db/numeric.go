package db

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

var bigTen = big.NewInt(10)

// toNumeric converts an integer amount into a NUMERIC parameter.
func toNumeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = new(big.Int)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Exp: 0, Valid: true}
}

// fromNumeric converts a scanned NUMERIC(78,0) into an integer amount.
// pgx may return trailing zeros as a positive exponent.
func fromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid || n.Int == nil {
		return new(big.Int), nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("non-finite numeric amount")
	}
	out := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		out.Mul(out, new(big.Int).Exp(bigTen, big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		out.Quo(out, new(big.Int).Exp(bigTen, big.NewInt(int64(-n.Exp)), nil))
	}
	return out, nil
}
