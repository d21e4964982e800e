package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityFields() []Field {
	return []Field{
		{Name: "name", Required: true},
		{Name: "type", Required: true},
	}
}

func TestEntityCreate(t *testing.T) {
	s := EntityCreate(entityFields())

	t.Run("ValidPayload", func(t *testing.T) {
		validated, err := s.Validate(map[string]any{
			"name": "Pikachu",
			"type": "electric",
		})
		require.NoError(t, err)
		assert.Equal(t, "Pikachu", validated["name"])
		assert.Equal(t, "electric", validated["type"])
	})

	t.Run("EnumeratesEveryViolation", func(t *testing.T) {
		_, err := s.Validate(map[string]any{})
		require.Error(t, err)

		fields := FieldErrors(err)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "type")
	})

	t.Run("RejectsUnknownKeys", func(t *testing.T) {
		_, err := s.Validate(map[string]any{
			"name": "Pikachu",
			"type": "electric",
			"hp":   100,
		})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "hp")
	})

	t.Run("NilPayload", func(t *testing.T) {
		_, err := s.Validate(nil)
		require.Error(t, err)
	})
}

func TestEntityUpdate(t *testing.T) {
	s := EntityUpdate(entityFields())

	t.Run("AllEntityFieldsOptional", func(t *testing.T) {
		validated, err := s.Validate(map[string]any{"name": "Raichu"})
		require.NoError(t, err)
		assert.Equal(t, "Raichu", validated["name"])
		assert.NotContains(t, validated, "type")
	})

	t.Run("AcceptsIdentifier", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"id": uuid.New().String()})
		require.NoError(t, err)
	})

	t.Run("RejectsMalformedIdentifier", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"id": "not-an-id"})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "id")
	})
}

func TestIdentifierOnly(t *testing.T) {
	s := IdentifierOnly()

	_, err := s.Validate(map[string]any{"id": uuid.New().String()})
	require.NoError(t, err)

	_, err = s.Validate(map[string]any{"id": "123"})
	require.Error(t, err)

	_, err = s.Validate(map[string]any{})
	require.Error(t, err)
}

func TestPaginationRequest(t *testing.T) {
	s := PaginationRequest(100)

	t.Run("PageOnly", func(t *testing.T) {
		validated, err := s.Validate(map[string]any{"page": float64(1)})
		require.NoError(t, err)
		assert.Equal(t, float64(1), validated["page"])
	})

	t.Run("PageAndSize", func(t *testing.T) {
		_, err := s.Validate(map[string]any{
			"page":     float64(3),
			"pageSize": float64(50),
		})
		require.NoError(t, err)
	})

	t.Run("RejectsZeroPage", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"page": float64(0)})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "page")
	})

	t.Run("RejectsFractionalPage", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"page": 2.5})
		require.Error(t, err)
	})

	t.Run("RejectsOversizedPageSize", func(t *testing.T) {
		_, err := s.Validate(map[string]any{
			"page":     float64(1),
			"pageSize": float64(1000),
		})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "pageSize")
	})

	t.Run("RejectsNonNumericPage", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"page": "one"})
		require.Error(t, err)
	})
}

func TestFilterRequest(t *testing.T) {
	s := FilterRequest([]string{"type"})

	t.Run("ValidFilter", func(t *testing.T) {
		_, err := s.Validate(map[string]any{
			"filters": []any{
				map[string]any{"key": "type", "value": "electric"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("RejectsEmptyFilterList", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"filters": []any{}})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "filters")
	})

	t.Run("RejectsMissingFilters", func(t *testing.T) {
		_, err := s.Validate(map[string]any{})
		require.Error(t, err)
	})

	t.Run("RejectsKeyOutsideAllowList", func(t *testing.T) {
		_, err := s.Validate(map[string]any{
			"filters": []any{
				map[string]any{"key": "ownerId", "value": "ash"},
			},
		})
		require.Error(t, err)
	})
}

func TestSearchRequest(t *testing.T) {
	s := SearchRequest([]string{"name"})

	t.Run("ValidSearch", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"key": "name", "value": "pika"})
		require.NoError(t, err)
	})

	t.Run("RejectsKeyOutsideAllowList", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"key": "type", "value": "pika"})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "key")
	})

	t.Run("RejectsEmptyValue", func(t *testing.T) {
		_, err := s.Validate(map[string]any{"key": "name", "value": ""})
		require.Error(t, err)
		assert.Contains(t, FieldErrors(err), "value")
	})
}

func TestDecode(t *testing.T) {
	var out struct {
		Page     int `json:"page"`
		PageSize int `json:"pageSize"`
	}
	err := Decode(map[string]any{
		"page":     float64(2),
		"pageSize": float64(10),
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 10, out.PageSize)
}

func TestFieldErrorsPassthrough(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Nil(t, FieldErrors(assert.AnError))
}
