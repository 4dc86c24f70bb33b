package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestApplication(t *testing.T) {
	app := TestApplication()

	assert.Len(t, app.Fields, len(FieldNames))
	for i, f := range app.Fields {
		assert.Equal(t, FieldNames[i], f.Name)
		assert.NotEmpty(t, f.Value, "field %s", f.Name)
	}
}

func TestTestApplicationIsCopy(t *testing.T) {
	a := TestApplication()
	a.Fields[0].Value = "changed"

	v, ok := TestApplication().Get("firstName")
	assert.True(t, ok)
	assert.Equal(t, "Test", v)
}

func TestApplicationGetAndMap(t *testing.T) {
	app := Application{Fields: []Field{{"loanAmount", "100000"}, {"tenure", "12"}}}

	v, ok := app.Get("tenure")
	assert.True(t, ok)
	assert.Equal(t, "12", v)

	_, ok = app.Get("panNo")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"loanAmount": "100000", "tenure": "12"}, app.Map())
}
