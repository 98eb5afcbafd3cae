package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/carlosnayan/prisma-schema/internal/schemaerr"
)

// LoadDotEnv procura um arquivo .env a partir do diretório dado, subindo
// os diretórios até a raiz, e carrega o primeiro encontrado. Arquivo
// ausente não é erro: o .env é opcional.
func LoadDotEnv(fromDir string) error {
	dir := fromDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		dir = wd
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// Expand expande referências a variáveis de ambiente em uma string.
// Suporta env("VAR"), env('VAR'), ${VAR} e $VAR. Variáveis não definidas
// viram string vazia; use ExpandStrict para tratar como erro.
func Expand(s string) string {
	out, _ := expand(s, false)
	return out
}

// ExpandStrict expande como Expand, mas retorna erro (P1011) quando uma
// variável referenciada não está definida no ambiente.
func ExpandStrict(s string) (string, error) {
	return expand(s, true)
}

func expand(s string, strict bool) (string, error) {
	// Primeiro o formato env("VAR") / env('VAR')
	for {
		start, name, end := findEnvCall(s)
		if start == -1 {
			break
		}
		value, ok := os.LookupEnv(name)
		if !ok && strict {
			return s, schemaerr.NewEnvVarError(name)
		}
		s = s[:start] + value + s[end:]
	}

	// Depois ${VAR} e $VAR
	var missing string
	s = os.Expand(s, func(name string) string {
		value, ok := os.LookupEnv(name)
		if !ok && missing == "" {
			missing = name
		}
		return value
	})
	if strict && missing != "" {
		return s, schemaerr.NewEnvVarError(missing)
	}

	return s, nil
}

// findEnvCall localiza a próxima ocorrência de env("VAR") ou env('VAR'),
// retornando o início, o nome da variável e o fim (exclusivo)
func findEnvCall(s string) (start int, name string, end int) {
	for _, quote := range []string{`"`, `'`} {
		open := `env(` + quote
		idx := strings.Index(s, open)
		if idx == -1 {
			continue
		}
		rest := s[idx+len(open):]
		closeIdx := strings.Index(rest, quote+`)`)
		if closeIdx == -1 {
			continue
		}
		return idx, rest[:closeIdx], idx + len(open) + closeIdx + 2
	}
	return -1, "", 0
}

// IsEnvRef verifica se uma string ainda contém referências não expandidas
func IsEnvRef(s string) bool {
	if start, _, _ := findEnvCall(s); start != -1 {
		return true
	}
	return strings.Contains(s, "${")
}
