package scaffold

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tsinit-dev/tsinit/internal/scheme"
)

// ESLintConfigName uses the .mjs extension so the config loads as an
// ES module regardless of the package type.
const ESLintConfigName = "eslint.config.mjs"

var eslintTemplate = template.Must(template.New("eslint").Parse(`// @ts-check
import eslint from "@eslint/js";
import globals from "globals";
import tseslint from "typescript-eslint";

export default tseslint.config(
  eslint.configs.recommended,
  ...tseslint.configs.recommended,
  {
    languageOptions: {
      globals: {
        ...globals.node,{{if .CommonJS}}
        ...globals.commonjs,{{end}}
      },
    },
    rules: {
      "no-console": "off",
      "@typescript-eslint/no-unused-vars": ["warn", { argsIgnorePattern: "^_" }],
    },
  },
  {
    ignores: ["dist/", "node_modules/"],
  },
);
`))

// ESLintConfig renders the lint configuration source text. The rule
// set and plugin wiring are fixed; CommonJS projects additionally get
// the commonjs global-environment preset.
func ESLintConfig(sch scheme.Scheme) ([]byte, error) {
	var buf bytes.Buffer
	data := struct{ CommonJS bool }{CommonJS: sch == scheme.CommonJS}
	if err := eslintTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", ESLintConfigName, err)
	}
	return buf.Bytes(), nil
}
