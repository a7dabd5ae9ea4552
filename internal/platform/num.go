package platform

import (
	"bytes"
	"strconv"
)

// Num is an integer the API serializes inconsistently as a bare number or a
// quoted string. Zero means absent.
type Num int64

// UnmarshalJSON accepts 123, "123", "123.0", null, and "".
func (n *Num) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*n = Num(v)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Num(int64(f))
	return nil
}

// Int64 returns the value as int64.
func (n Num) Int64() int64 { return int64(n) }

// String renders the value in decimal; empty for absent values.
func (n Num) String() string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(int64(n), 10)
}
