package template

// Built-in description skeletons, one per proposal kind. Placeholders are
// filled by Render; sections the author leaves empty read fine in the recap.

var defaults = map[string]string{
	"transfer": `# {{name}}

## Summary

What is being funded and why. Proposed to {{dao}} on {{date}}.

## Recipients

Who receives the funds and what each recipient delivers.

## Budget Rationale

Why this amount, and from which vault.
`,

	"config": `# {{name}}

## Summary

What changes and why. Proposed to {{dao}} on {{date}}.

## Impact

How the change affects existing voters and open intents.
`,

	"deps": `# {{name}}

## Summary

Which packages change and why. Proposed to {{dao}} on {{date}}.

## Audit Status

Verification status of each added or upgraded package.
`,

	"vesting": `# {{name}}

## Summary

Who is being vested and for what work. Proposed to {{dao}} on {{date}}.

## Schedule Rationale

Why this window and amount.
`,
}

const genericTemplate = `# {{name}}

## Summary

A {{kind}} proposal for {{dao}}, drafted on {{date}}.
`
