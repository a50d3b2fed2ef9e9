package picker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testpick/internal/config"
	"testpick/internal/domain"
)

const (
	pytestFixture = "testdata/python/pytest/test_stuff.py"
	gotestFixture = "testdata/go/gotest/main_test.go"
	cargoFixture  = "testdata/rust/cargo/src/pickers/tester.rs"
	phpFixture    = "testdata/php/app/tests/Unit/UserTest.php"
	phpAnnotated  = "testdata/php/app/tests/Feature/SignupTest.php"
)

func newTestRegistry() *Registry {
	return NewRegistry(config.New(), nil)
}

func TestRegistry_For(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		file string
		want domain.Language
	}{
		{file: "test_stuff.py", want: domain.LanguagePython},
		{file: "src/lib.rs", want: domain.LanguageRust},
		{file: "main_test.go", want: domain.LanguageGo},
		{file: "tests/UserTest.php", want: domain.LanguagePHP},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, err := r.For(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Language())
		})
	}

	_, err := r.For("README.md")
	assert.ErrorIs(t, err, ErrUnknownFileType)
}

func TestRegistry_IsTestFile(t *testing.T) {
	r := newTestRegistry()

	assert.True(t, r.IsTestFile("pkg/test_models.py"))
	assert.True(t, r.IsTestFile("pkg/models_test.py"))
	assert.True(t, r.IsTestFile("handler_test.go"))
	assert.True(t, r.IsTestFile("src/parser.rs"))
	assert.True(t, r.IsTestFile("tests/Unit/UserTest.php"))

	assert.False(t, r.IsTestFile("pkg/models.py"))
	assert.False(t, r.IsTestFile("handler.go"))
	assert.False(t, r.IsTestFile("src/User.php"))
	assert.False(t, r.IsTestFile("notes.txt"))
}

func TestRegistry_Command_Python(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{
			name: "nested class method",
			req:  domain.Request{File: pytestFixture, Line: 4},
			want: "pytest " + pytestFixture + "::TestClass::TestNestedClass::test_nestedclass_method",
		},
		{
			name: "method skips sibling class",
			req:  domain.Request{File: pytestFixture, Line: 7},
			want: "pytest " + pytestFixture + "::TestClass::test_method",
		},
		{
			name: "class only",
			req:  domain.Request{File: pytestFixture, Line: 10},
			want: "pytest " + pytestFixture + "::TestClassObj",
		},
		{
			name: "function",
			req:  domain.Request{File: pytestFixture, Line: 16},
			want: "pytest " + pytestFixture + "::test_function",
		},
		{
			name: "async function verbose",
			req:  domain.Request{File: pytestFixture, Line: 20, Verbose: true},
			want: "pytest -v " + pytestFixture + "::test_async_function",
		},
		{
			name: "no line",
			req:  domain.Request{File: pytestFixture},
			want: "pytest " + pytestFixture,
		},
		{
			name: "full",
			req:  domain.Request{File: pytestFixture, Line: 4, Full: true},
			want: "pytest",
		},
		{
			name: "full verbose",
			req:  domain.Request{File: pytestFixture, Full: true, Verbose: true},
			want: "pytest -v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Command_Rust(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{
			name: "test function",
			req:  domain.Request{File: cargoFixture, Line: 16},
			want: "cargo test pickers::tester::tests::test_simple",
		},
		{
			name: "test module",
			req:  domain.Request{File: cargoFixture, Line: 3},
			want: "cargo test pickers::tester::tests",
		},
		{
			name: "test module verbose",
			req:  domain.Request{File: cargoFixture, Line: 3, Verbose: true},
			want: "cargo test -v pickers::tester::tests",
		},
		{
			name: "no line",
			req:  domain.Request{File: cargoFixture},
			want: "cargo test pickers::tester",
		},
		{
			name: "full",
			req:  domain.Request{File: cargoFixture, Line: 3, Full: true},
			want: "cargo test",
		},
		{
			name: "full verbose",
			req:  domain.Request{File: cargoFixture, Line: 3, Full: true, Verbose: true},
			want: "cargo test -v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Command_Go(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{
			name: "inside test body",
			req:  domain.Request{File: gotestFixture, Line: 21},
			want: "go test -run TestInputParseBasic",
		},
		{
			name: "on declaration",
			req:  domain.Request{File: gotestFixture, Line: 8},
			want: "go test -run TestInputParseBasic",
		},
		{
			name: "suite method",
			req:  domain.Request{File: gotestFixture, Line: 32, Verbose: true},
			want: "go test -v -testify.m ^TestNewThing$",
		},
		{
			name: "no line",
			req:  domain.Request{File: gotestFixture},
			want: "go test " + gotestFixture,
		},
		{
			name: "full",
			req:  domain.Request{File: gotestFixture, Line: 21, Full: true},
			want: "go test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Command_PHP(t *testing.T) {
	r := newTestRegistry()
	runner := filepath.Join("testdata", "php", "app", "vendor", "bin", "phpunit")

	tests := []struct {
		name string
		req  domain.Request
		want string
	}{
		{
			name: "test method",
			req:  domain.Request{File: phpFixture, Line: 11},
			want: runner + " --filter 'UserTest::testCreateUser' " + phpFixture,
		},
		{
			name: "static snake case method",
			req:  domain.Request{File: phpFixture, Line: 21, Verbose: true},
			want: runner + " --testdox --filter 'UserTest::test_user_login' " + phpFixture,
		},
		{
			name: "class only",
			req:  domain.Request{File: phpFixture, Line: 8},
			want: runner + " --filter 'UserTest' " + phpFixture,
		},
		{
			name: "no line",
			req:  domain.Request{File: phpFixture},
			want: runner + " " + phpFixture,
		},
		{
			name: "full",
			req:  domain.Request{File: phpFixture, Full: true},
			want: runner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Command_PHPAnnotations(t *testing.T) {
	r := newTestRegistry()
	runner := filepath.Join("testdata", "php", "app", "vendor", "bin", "phpunit")

	tests := []struct {
		name string
		line int
		want string
	}{
		{name: "plain test method", line: 11, want: "SignupTest::testFirst"},
		{name: "docblock on the line above", line: 17, want: "SignupTest::it_creates_users"},
		{name: "cursor on the annotation", line: 14, want: "SignupTest::it_creates_users"},
		{name: "multi-line docblock", line: 26, want: "SignupTest::it_signs_in"},
		{name: "annotation and method on one line", line: 31, want: "SignupTest::it_logs_out"},
		{name: "attribute", line: 37, want: "SignupTest::it_resets_passwords"},
		{name: "annotated test method", line: 43, want: "SignupTest::testAnnotatedTwice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Command(domain.Request{File: phpAnnotated, Line: tt.line})
			require.NoError(t, err)
			assert.Equal(t, runner+" --filter '"+tt.want+"' "+phpAnnotated, got)
		})
	}
}

func TestRegistry_Command_PHPOutsideComposer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "UserTest.php")
	src := "<?php\nclass UserTest extends TestCase\n{\n    public function testFirst(): void\n    {\n    }\n}\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0644))

	got, err := newTestRegistry().Command(domain.Request{File: file, Line: 5})
	require.NoError(t, err)
	assert.Equal(t, "vendor/bin/phpunit --filter 'UserTest::testFirst' "+file, got)
}

func TestRegistry_Command_Errors(t *testing.T) {
	r := newTestRegistry()

	t.Run("nothing above the line", func(t *testing.T) {
		_, err := r.Command(domain.Request{File: phpFixture, Line: 3})
		assert.ErrorIs(t, err, ErrNoTests)
	})

	t.Run("unknown file type", func(t *testing.T) {
		_, err := r.Command(domain.Request{File: "notes.txt", Line: 3})
		assert.ErrorIs(t, err, ErrUnknownFileType)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := r.Command(domain.Request{File: "testdata/missing_test.go", Line: 3})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRegistry_Enumerate(t *testing.T) {
	r := newTestRegistry()

	t.Run("python", func(t *testing.T) {
		entries, err := r.Enumerate(pytestFixture)
		require.NoError(t, err)
		require.Len(t, entries, 5)

		assert.Equal(t, 3, entries[0].Line)
		assert.Equal(t, "test_nestedclass_method", entries[0].Name)
		assert.Equal(t, []string{"TestClass", "TestNestedClass", "test_nestedclass_method"}, entries[0].QualifiedName)

		assert.Equal(t, []string{"TestClass", "test_method"}, entries[1].QualifiedName)
		assert.Equal(t, []string{"TestClassObj", "test_method_obj"}, entries[2].QualifiedName)
		assert.Equal(t, "pytest "+pytestFixture+"::test_function", entries[3].Command)
		assert.Equal(t, 19, entries[4].Line)
	})

	t.Run("rust", func(t *testing.T) {
		entries, err := r.Enumerate(cargoFixture)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.Equal(t, 6, entries[0].Line)
		assert.Equal(t, "test_simple", entries[0].Name)
		assert.Equal(t, "cargo test pickers::tester::tests::test_simple", entries[0].Command)
	})

	t.Run("go", func(t *testing.T) {
		entries, err := r.Enumerate(gotestFixture)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "TestInputParseBasic", entries[0].Name)
		assert.Equal(t, "go test -testify.m ^TestNewThing$", entries[1].Command)
	})

	t.Run("php", func(t *testing.T) {
		entries, err := r.Enumerate(phpFixture)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, []string{"UserTest", "testCreateUser"}, entries[0].QualifiedName)
		assert.Equal(t, 19, entries[1].Line)
	})

	t.Run("php annotations", func(t *testing.T) {
		entries, err := r.Enumerate(phpAnnotated)
		require.NoError(t, err)

		var names []string
		var lines []int
		for _, e := range entries {
			names = append(names, e.Name)
			lines = append(lines, e.Line)
		}
		assert.Equal(t, []string{"testFirst", "it_creates_users", "it_signs_in", "it_logs_out", "it_resets_passwords", "testAnnotatedTwice"}, names)
		assert.Equal(t, []int{9, 15, 24, 29, 35, 41}, lines)
	})
}
