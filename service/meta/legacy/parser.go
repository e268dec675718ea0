package legacy

import (
	"fmt"
	"strconv"

	"github.com/viant/parsly"
)

// Input holds the six values of the classic input format, in file order:
// instance count, tanks, healers, dps, min run time, max run time.
type Input struct {
	Instances int
	Tanks     int
	Healers   int
	DPS       int
	MinTime   int
	MaxTime   int
}

const fieldCount = 6

// Parse parses the classic whitespace-separated format: `n t h d t1 t2`.
// Values may be split across lines; anything beyond the sixth integer is an
// error.
func Parse(input []byte) (*Input, error) {
	cursor := parsly.NewCursor("", input, 0)
	values := make([]int, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		matched := cursor.MatchAfterOptional(whitespaceToken, integerToken)
		if matched.Code != integerToken.Code {
			return nil, cursor.NewError(integerToken)
		}
		text := matched.Text(cursor)
		value, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", text, err)
		}
		values = append(values, value)
	}
	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("unexpected content at offset %d", cursor.Pos)
	}
	return &Input{
		Instances: values[0],
		Tanks:     values[1],
		Healers:   values[2],
		DPS:       values[3],
		MinTime:   values[4],
		MaxTime:   values[5],
	}, nil
}
