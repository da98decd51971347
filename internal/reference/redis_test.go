package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Load(t *testing.T) {
	db, mock := redismock.NewClientMock()
	st := NewRedisStore(db, "match:")

	mock.ExpectSMembers("match:brand_names").SetVal([]string{"acme"})
	mock.ExpectSMembers("match:brand_aliases").SetVal([]string{"acm"})
	mock.ExpectSMembers("match:part_numbers").SetVal([]string{"ab123"})
	mock.ExpectHGetAll("match:brand_name_to_id").SetVal(map[string]string{"acme": `{"id":1}`})
	mock.ExpectHGetAll("match:brand_alias_to_id").SetVal(map[string]string{"acm": `{"id":"1"}`})
	mock.ExpectHGetAll("match:part_number_to_id").SetVal(map[string]string{"ab123": `{"id":9}`})

	snap, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, snap.BrandNames)
	assert.Equal(t, "1", snap.BrandNameToID["acme"].ID)
	assert.Equal(t, "1", snap.BrandAliasToID["acm"].ID)
	assert.Equal(t, "9", snap.PartNumberToID["ab123"].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LoadError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	st := NewRedisStore(db, "")

	mock.ExpectSMembers("brand_names").SetErr(errors.New("conn refused"))

	_, err := st.Load(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "brand_names")
}

func TestRedisStore_LoadBadJSON(t *testing.T) {
	db, mock := redismock.NewClientMock()
	st := NewRedisStore(db, "")

	mock.ExpectSMembers("brand_names").SetVal(nil)
	mock.ExpectSMembers("brand_aliases").SetVal(nil)
	mock.ExpectSMembers("part_numbers").SetVal(nil)
	mock.ExpectHGetAll("brand_name_to_id").SetVal(map[string]string{"acme": `{oops`})

	_, err := st.Load(context.Background())
	assert.Error(t, err)
}
