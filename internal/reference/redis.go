package reference

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore: множества - SET, индексы - HASH (ключ -> json записи).
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedisStore(rdb redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(name string) string { return s.prefix + name }

func (s *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.BrandNames, err = s.members(ctx, "brand_names"); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandAliases, err = s.members(ctx, "brand_aliases"); err != nil {
		return Snapshot{}, err
	}
	if snap.PartNumbers, err = s.members(ctx, "part_numbers"); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandNameToID, err = s.index(ctx, "brand_name_to_id"); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandAliasToID, err = s.index(ctx, "brand_alias_to_id"); err != nil {
		return Snapshot{}, err
	}
	if snap.PartNumberToID, err = s.index(ctx, "part_number_to_id"); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *RedisStore) members(ctx context.Context, name string) ([]string, error) {
	vals, err := s.rdb.SMembers(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", name, err)
	}
	return vals, nil
}

func (s *RedisStore) index(ctx context.Context, name string) (map[string]Record, error) {
	raw, err := s.rdb.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", name, err)
	}
	out := make(map[string]Record, len(raw))
	for k, v := range raw {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("redis %s[%s]: %w", name, k, err)
		}
		out[k] = rec
	}
	return out, nil
}

// Save заменяет справочники целиком в одной транзакции.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	sets := []struct {
		name string
		vals []string
	}{
		{"brand_names", snap.BrandNames},
		{"brand_aliases", snap.BrandAliases},
		{"part_numbers", snap.PartNumbers},
	}
	idx := []struct {
		name string
		m    map[string]Record
	}{
		{"brand_name_to_id", snap.BrandNameToID},
		{"brand_alias_to_id", snap.BrandAliasToID},
		{"part_number_to_id", snap.PartNumberToID},
	}

	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, st := range sets {
			p.Del(ctx, s.key(st.name))
			uniq := NewSet(st.vals, nil).Sorted()
			if len(uniq) == 0 {
				continue
			}
			members := make([]any, len(uniq))
			for i, v := range uniq {
				members[i] = v
			}
			p.SAdd(ctx, s.key(st.name), members...)
		}
		for _, ix := range idx {
			p.Del(ctx, s.key(ix.name))
			if len(ix.m) == 0 {
				continue
			}
			fields := make([]any, 0, 2*len(ix.m))
			for _, k := range sortedKeys(ix.m) {
				b, err := json.Marshal(ix.m[k])
				if err != nil {
					return fmt.Errorf("encode %s[%s]: %w", ix.name, k, err)
				}
				fields = append(fields, k, string(b))
			}
			p.HSet(ctx, s.key(ix.name), fields...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}
