package mcpserver

// TokenContract describes the canonical placeholder tokens that LLM
// consumers should use when writing or rendering template bodies.
const TokenContract = `# Ansuz Template Token Contract

Every reply template body stored in Ansuz may use these placeholder tokens.
Tokens are substituted at render time; the stored body is never modified.

## Tokens

` + "```" + `text
{{client_name}}     Customer name     (default: "Customer")
{{agent_name}}      Agent signature   (default: "Support Team")
{{issue_summary}}   Issue description (no default; an empty value leaves a hint)
{{ticket_number}}   Ticket reference  (no default; renders empty)
{{current_date}}    Render date, e.g. "March 14, 2026" (always available)
` + "```" + `

## Rules

1. **Token syntax** is double curly braces: ` + "`" + `{{client_name}}` + "`" + `. Whitespace
   inside the braces is tolerated (` + "`" + `{{ client_name }}` + "`" + `).
2. **Token names are case-insensitive.** ` + "`" + `{{Client_Name}}` + "`" + ` resolves the
   same value as ` + "`" + `{{client_name}}` + "`" + `.
3. **Unknown tokens survive rendering unchanged** so a typo is visible in
   the preview instead of disappearing silently.
4. **Substitution is single-pass.** A value containing ` + "`" + `{{...}}` + "`" + ` text is
   inserted literally, never expanded again.
5. **Closings are appended by tone** (formal, friendly, apologetic,
   proactive). A body that already ends with the agent name or contains
   "Best regards" keeps its own closing.

## Example

` + "```" + `text
Hi {{client_name}},

Thanks for reaching out about {{issue_summary}}.
We are tracking this under {{ticket_number}} and will follow up shortly.
` + "```" + `
`
