package reference

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Snapshot: всё, что собирает краулер и читает сервис на старте.
type Snapshot struct {
	BrandNames   []string
	BrandAliases []string
	PartNumbers  []string

	BrandNameToID  map[string]Record
	BrandAliasToID map[string]Record
	PartNumberToID map[string]Record
}

// Store: где лежат справочники между запусками.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Load читает снапшот и собирает Context.
func Load(ctx context.Context, st Store, kw Keywords) (*Context, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(snap, kw), nil
}

const (
	brandNamesFile     = "brand_names.txt"
	brandAliasesFile   = "brand_aliases.txt"
	partNumbersFile    = "part_numbers.txt"
	brandNameIndexFile = "brand_name_to_id.json"
	brandAliasIdxFile  = "brand_alias_to_id.json"
	partNumberIdxFile  = "part_number_to_id.json"
)

// FileStore: три текстовых файла (строка = значение) и три json-словаря.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

func (s *FileStore) Load(_ context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.BrandNames, err = s.readLines(brandNamesFile); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandAliases, err = s.readLines(brandAliasesFile); err != nil {
		return Snapshot{}, err
	}
	if snap.PartNumbers, err = s.readLines(partNumbersFile); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandNameToID, err = s.readIndex(brandNameIndexFile); err != nil {
		return Snapshot{}, err
	}
	if snap.BrandAliasToID, err = s.readIndex(brandAliasIdxFile); err != nil {
		return Snapshot{}, err
	}
	if snap.PartNumberToID, err = s.readIndex(partNumberIdxFile); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	lines := map[string][]string{
		brandNamesFile:   snap.BrandNames,
		brandAliasesFile: snap.BrandAliases,
		partNumbersFile:  snap.PartNumbers,
	}
	for name, vals := range lines {
		if err := s.writeLines(name, vals); err != nil {
			return err
		}
	}
	idx := map[string]map[string]Record{
		brandNameIndexFile: snap.BrandNameToID,
		brandAliasIdxFile:  snap.BrandAliasToID,
		partNumberIdxFile:  snap.PartNumberToID,
	}
	for name, m := range idx {
		if m == nil {
			m = map[string]Record{}
		}
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := s.writeFile(name, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) readLines(name string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", name, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reference %s: %w", name, err)
	}
	return out, nil
}

func (s *FileStore) readIndex(name string) (map[string]Record, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", name, err)
	}
	m := map[string]Record{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("reference %s: %w", name, err)
	}
	return m, nil
}

// writeLines пишет уникальные значения по алфавиту.
func (s *FileStore) writeLines(name string, vals []string) error {
	uniq := NewSet(vals, nil).Sorted()
	var sb strings.Builder
	for _, v := range uniq {
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	return s.writeFile(name, []byte(sb.String()))
}

// writeFile: через временный файл, чтобы читатель не увидел половину.
func (s *FileStore) writeFile(name string, b []byte) error {
	tmp, err := os.CreateTemp(s.Dir, name+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
}

// sortedKeys: для детерминированной записи в redis.
func sortedKeys(m map[string]Record) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
