package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantsScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Variants
	}{
		{"bytes", []byte(`[{"size":"M","color":"Black","stock":5}]`), Variants{{Size: "M", Color: "Black", Stock: 5}}},
		{"string", `[{"size":"S","color":"White","stock":1}]`, Variants{{Size: "S", Color: "White", Stock: 1}}},
		{"null", nil, Variants{}},
		{"empty", "", Variants{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Variants
			require.NoError(t, v.Scan(tt.src))
			assert.Equal(t, tt.want, v)
		})
	}

	var v Variants
	assert.Error(t, v.Scan(42))
}

func TestVariantsFindAndTotal(t *testing.T) {
	v := Variants{
		{Size: "M", Color: "Black", Stock: 5},
		{Size: "L", Color: "Black", Stock: 2},
	}

	assert.Equal(t, 1, v.Find("L", "Black"))
	assert.Equal(t, -1, v.Find("L", "White"))
	assert.Equal(t, 7, v.TotalStock())

	c := v.Clone()
	c[0].Stock = 0
	assert.Equal(t, 5, v[0].Stock)
}

func TestNilListsStoreEmptyArray(t *testing.T) {
	val, err := Variants(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	val, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	val, err = Int64List{3, 4}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[3,4]", val)
}

func TestProductSyncStock(t *testing.T) {
	p := &Product{Stock: 99}
	p.SyncStock()
	assert.Equal(t, 99, p.Stock, "products without variants keep their stock")

	p.Variants = Variants{{Size: "M", Color: "Black", Stock: 3}, {Size: "S", Color: "Red", Stock: 4}}
	p.SyncStock()
	assert.Equal(t, 7, p.Stock)
}

func TestDecimalRendersAsNumber(t *testing.T) {
	b, err := json.Marshal(Product{RewardPoints: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rewardPoints":20`)
}

func TestNotificationRecipientsDeduplicates(t *testing.T) {
	id := int64(3)
	n := &Notification{TargetUserID: &id, TargetUserIDs: Int64List{1, 3, 2, 1}}
	assert.Equal(t, []int64{3, 1, 2}, n.Recipients())
}
