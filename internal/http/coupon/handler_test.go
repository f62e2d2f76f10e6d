package coupon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexValue_Decode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "Number", in: `10`, want: 10},
		{name: "NumericString", in: `"10"`, want: 10},
		{name: "ReaisWithComma", in: `"10,50"`, want: 1050},
		{name: "ReaisWithDot", in: `"10.50"`, want: 1050},
		{name: "FractionalNumber", in: `10.5`, want: 1050},
		{name: "PaddedString", in: `" 250 "`, want: 250},
		{name: "Zero", in: `0`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v flexValue
			require.NoError(t, json.Unmarshal([]byte(tt.in), &v))
			assert.Equal(t, tt.want, int64(v))
		})
	}
}

func TestFlexValue_DecodeRejectsGarbage(t *testing.T) {
	var v flexValue

	assert.Error(t, json.Unmarshal([]byte(`"dez reais"`), &v))
	assert.Error(t, json.Unmarshal([]byte(`""`), &v))
}
