package picker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testpick/internal/discovery"
	"testpick/internal/domain"
	"testpick/internal/locator"
)

func newCrate(t *testing.T) string {
	t.Helper()
	crate := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(crate, "Cargo.toml"), []byte("[package]\n"), 0644))
	return crate
}

func writeCrateFile(t *testing.T, crate, file, src string) string {
	t.Helper()
	path := filepath.Join(crate, file)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestRustLocate(t *testing.T) {
	crate := newCrate(t)

	tests := []struct {
		name       string
		file       string
		wantBinary string
		wantModule []string
	}{
		{name: "nested file", file: "src/net/http.rs", wantModule: []string{"net", "http"}},
		{name: "mod file collapses", file: "src/net/mod.rs", wantModule: []string{"net"}},
		{name: "crate lib", file: "src/lib.rs", wantModule: []string{}},
		{name: "crate main", file: "src/main.rs", wantModule: []string{}},
		{name: "nested main is a module", file: "src/bin/main.rs", wantModule: []string{"bin", "main"}},
		{name: "integration test file", file: "tests/api.rs", wantBinary: "api"},
		{name: "integration test directory", file: "tests/api/main.rs", wantBinary: "api", wantModule: []string{}},
		{name: "integration test submodule", file: "tests/api/client.rs", wantBinary: "api", wantModule: []string{"client"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rustLocate(filepath.Join(crate, tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.wantBinary, got.binary)
			assert.Equal(t, tt.wantModule, got.module)
		})
	}

	t.Run("outside src and tests", func(t *testing.T) {
		_, err := rustLocate(filepath.Join(crate, "benches", "bench.rs"))
		assert.ErrorIs(t, err, ErrNotInSource)
	})
}

func TestRustPicker_IntegrationTests(t *testing.T) {
	crate := newCrate(t)
	src := "use mycrate::add;\n\n#[test]\nfn adds_numbers() {\n    assert_eq!(add(1, 2), 3);\n}\n\n#[tokio::test]\nasync fn adds_later() {\n    assert!(true);\n}\n"
	file := writeCrateFile(t, crate, "tests/it.rs", src)
	r := newTestRegistry()

	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{name: "top level test", req: domain.Request{File: file, Line: 5}, want: "cargo test --test it adds_numbers"},
		{name: "async test", req: domain.Request{File: file, Line: 10}, want: "cargo test --test it adds_later"},
		{name: "above every test", req: domain.Request{File: file, Line: 1}, want: "cargo test --test it"},
		{name: "no line", req: domain.Request{File: file}, want: "cargo test --test it"},
		{name: "full", req: domain.Request{File: file, Line: 5, Full: true}, want: "cargo test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Enumerate_Crate(t *testing.T) {
	crate := newCrate(t)
	lib := writeCrateFile(t, crate, "src/lib.rs", "pub fn add() {}\n\n#[test]\nfn stray() {}\n\n#[cfg(test)]\nmod tests {\n    #[test]\n    fn test_add() {}\n}\n")
	it := writeCrateFile(t, crate, "tests/it.rs", "#[test]\nfn adds_numbers() {}\n")

	ix := discovery.NewIndexer(newTestRegistry(), 2)
	files, err := ix.Index(context.Background(), []string{lib, it}, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// the stray test outside a cfg(test) module cannot be addressed and is skipped
	require.Len(t, files[0].Entries, 1)
	assert.Equal(t, "cargo test tests::test_add", files[0].Entries[0].Command)

	require.Len(t, files[1].Entries, 1)
	assert.Equal(t, "cargo test --test it adds_numbers", files[1].Entries[0].Command)
}

func TestRustPicker_Resolve(t *testing.T) {
	crate := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(crate, "Cargo.toml"), []byte("[package]\n"), 0644))
	file := filepath.Join(crate, "src", "lib.rs")

	p := NewRustPicker("cargo")

	t.Run("marker without test module", func(t *testing.T) {
		lines := locator.SplitLines("#[test]\nfn test_alone() {}\n")
		_, err := p.Resolve(file, lines, 2)
		assert.ErrorIs(t, err, ErrNamespaceNotFound)
	})

	t.Run("cfg without mod", func(t *testing.T) {
		lines := locator.SplitLines("#[cfg(test)]\nfn helper() {}\n")
		// the fn line is not a mod, so no module follows the attribute
		_, err := p.Resolve(file, lines, 2)
		assert.ErrorIs(t, err, ErrNamespaceNotFound)
	})

	t.Run("marker without function", func(t *testing.T) {
		lines := locator.SplitLines("#[cfg(test)]\nmod tests {\n    #[test]\n}\n")
		_, err := p.Resolve(file, lines, 3)
		assert.ErrorIs(t, err, ErrTestFunctionNotFound)
	})

	t.Run("async test in crate root", func(t *testing.T) {
		src := "pub fn add() {}\n\n#[cfg(test)]\nmod tests {\n    #[tokio::test]\n    async fn test_add() {\n        assert!(true);\n    }\n}\n"
		sel, err := p.Resolve(file, locator.SplitLines(src), 7)
		require.NoError(t, err)
		require.NotNil(t, sel)
		assert.Equal(t, []string{"tests", "test_add"}, sel.Scope)
		assert.Equal(t, 6, sel.Declared)
		assert.True(t, sel.HasName)
	})

	t.Run("nothing in crate root", func(t *testing.T) {
		sel, err := p.Resolve(file, locator.SplitLines("pub fn add() {}\n"), 1)
		require.NoError(t, err)
		assert.Nil(t, sel)
	})
}
