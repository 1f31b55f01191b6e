// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package imports

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/unimigrate/internal/mapping"
	"github.com/petar-djukic/unimigrate/pkg/types"
)

func newRewriter() *Rewriter {
	return New(mapping.Builtin(), zerolog.Nop())
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		hints      []types.LegacyImport
		want       string
		migrations int
	}{
		{
			name: "mapped specifier moves, unmapped stays",
			input: `import React from 'react';
import { EnhancedCard, formatDate } from './legacy';

export const A = () => <EnhancedCard>{formatDate(now)}</EnhancedCard>;
`,
			want: `import React from 'react';
import { formatDate } from './legacy';
import { UnifiedCard } from '@/components/unified';

export const A = () => <UnifiedCard>{formatDate(now)}</UnifiedCard>;
`,
			migrations: 1,
		},
		{
			name: "unified name already bound is not imported again",
			input: `import { UnifiedCard } from './unified';
import { EnhancedCard } from './legacy';

export const A = () => <EnhancedCard><UnifiedCard /></EnhancedCard>;
`,
			want: `import { UnifiedCard } from './unified';

export const A = () => <UnifiedCard><UnifiedCard /></UnifiedCard>;
`,
			migrations: 1,
		},
		{
			name: "groups by import path and drops emptied statements",
			input: `import { PrimaryButton, PageLayout } from "../legacy"
import { DataTable } from "../legacy/table"

export const P = () => (
  <PageLayout><PrimaryButton /><DataTable /></PageLayout>
)
`,
			want: `import { UnifiedButton, UnifiedTable } from "@/components/unified"
import { UnifiedLayout } from "@/components/unified/layout"

export const P = () => (
  <UnifiedLayout><UnifiedButton /><UnifiedTable /></UnifiedLayout>
)
`,
			migrations: 3,
		},
		{
			name:       "alias preserved",
			input:      "import { PrimaryButton as Btn } from './legacy';\n\nexport const B = () => <Btn />;\n",
			want:       "import { UnifiedButton as Btn } from '@/components/unified';\n\nexport const B = () => <Btn />;\n",
			migrations: 1,
		},
		{
			name: "merges into existing unified import",
			input: `import { UnifiedCard } from '@/components/unified';
import { PrimaryButton } from './legacy';

export const C = () => <UnifiedCard><PrimaryButton /></UnifiedCard>;
`,
			want: `import { UnifiedCard, UnifiedButton } from '@/components/unified';

export const C = () => <UnifiedCard><UnifiedButton /></UnifiedCard>;
`,
			migrations: 1,
		},
		{
			name:       "two legacy names share one unified import",
			input:      "import { EnhancedCard, InfoCard } from './cards';\n\nexport const D = () => <EnhancedCard><InfoCard /></EnhancedCard>;\n",
			want:       "import { UnifiedCard } from '@/components/unified';\n\nexport const D = () => <UnifiedCard><UnifiedCard /></UnifiedCard>;\n",
			migrations: 2,
		},
		{
			name:       "default import with legacy name",
			input:      "import DataTable from './DataTable';\n\nexport const T = () => <DataTable data={d} />;\n",
			want:       "import { UnifiedTable } from '@/components/unified';\n\nexport const T = () => <UnifiedTable data={d} />;\n",
			migrations: 1,
		},
		{
			name:  "aliased default import resolved by hint",
			input: "import SaveButton from '@/legacy/Buttons';\n\nexport const F = () => <SaveButton />;\n",
			hints: []types.LegacyImport{{
				FilePath: "src/F.jsx", ComponentName: "PrimaryButton", LocalName: "SaveButton",
			}},
			want:       "import { UnifiedButton as SaveButton } from '@/components/unified';\n\nexport const F = () => <SaveButton />;\n",
			migrations: 1,
		},
		{
			name:  "aliased default import without hint is left alone",
			input: "import SaveButton from '@/legacy/Buttons';\n\nexport const F = () => <SaveButton />;\n",
			want:  "import SaveButton from '@/legacy/Buttons';\n\nexport const F = () => <SaveButton />;\n",
		},
		{
			name: "strings are not renamed",
			input: `import { PrimaryButton } from './b';
const label = "PrimaryButton";
export default PrimaryButton;
`,
			want: `import { UnifiedButton } from '@/components/unified';
const label = "PrimaryButton";
export default UnifiedButton;
`,
			migrations: 1,
		},
		{
			name:  "namespace and type imports untouched",
			input: "import * as Legacy from './legacy';\nimport type { PrimaryButton } from './types';\n",
			want:  "import * as Legacy from './legacy';\nimport type { PrimaryButton } from './types';\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := "Page.jsx"
			if tc.name == "namespace and type imports untouched" {
				path = "Page.tsx"
			}
			res, err := newRewriter().Rewrite(context.Background(), path, tc.input, tc.hints...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Text)
			assert.Len(t, res.Migrations, tc.migrations)
			assert.Equal(t, tc.input != tc.want, res.Changed)
		})
	}
}

func TestRewrite_Migrations(t *testing.T) {
	res, err := newRewriter().Rewrite(context.Background(), "Page.jsx",
		"import { PrimaryButton, ContentWrapper } from './legacy';\n")
	require.NoError(t, err)
	assert.Equal(t, []types.ImportMigration{
		{Legacy: "PrimaryButton", Unified: "UnifiedButton", ImportPath: mapping.UnifiedImportPath},
		{Legacy: "ContentWrapper", Unified: "UnifiedLayout", ImportPath: mapping.LayoutImportPath},
	}, res.Migrations)
}

func TestRewrite_Idempotent(t *testing.T) {
	input := `import { EnhancedCard, PrimaryButton as Btn } from './legacy';

export const A = () => <EnhancedCard><Btn /></EnhancedCard>;
`
	r := newRewriter()
	first, err := r.Rewrite(context.Background(), "A.jsx", input)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := r.Rewrite(context.Background(), "A.jsx", first.Text)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Empty(t, second.Migrations)
}
