package mcpserver

// SnapshotFormatContract describes the snapshot document that LLM consumers
// receive from get_snapshot and should follow when producing article content.
const SnapshotFormatContract = `# Mimir Snapshot Format Contract

The snapshot is a single JSON document holding the entire article collection.

## Structure

` + "```" + `json
{
  "version": 1,
  "exportedAt": "2025-01-20T12:34:56.789Z",
  "articles": [
    {
      "id": "a2f1c9d4-5e6b-4c7d-8e9f-0a1b2c3d4e5f",
      "title": "Article title",
      "content": "<p>Sanitized HTML body</p>",
      "createdAt": "2025-01-15T09:00:00.000Z",
      "updatedAt": "2025-01-20T12:30:00.000Z"
    }
  ]
}
` + "```" + `

## Rules

1. **` + "`" + `articles` + "`" + ` must be a JSON array.** Any other shape is rejected on import.
2. **` + "`" + `title` + "`" + ` values are normalized:** leading and trailing whitespace is
   trimmed and internal whitespace runs collapse to single spaces. Titles are
   unique within a collection (case-sensitive).
3. **` + "`" + `content` + "`" + ` is an HTML fragment.** It passes through a sanitizer on save:
   ` + "`" + `<script>` + "`" + ` elements, ` + "`" + `on*` + "`" + ` attributes, and ` + "`" + `javascript:` + "`" + ` URLs are removed.
   Do not rely on them.
4. **Internal links** between articles use a fragment href plus a data
   attribute: ` + "`" + `<a data-article-title="Other" href="#/Other">Other</a>` + "`" + `.
   The data attribute carries the exact normalized target title.
5. **Timestamps** are UTC with millisecond precision:
   ` + "`" + `2006-01-02T15:04:05.000Z` + "`" + `. Lexicographic order equals chronological order.
6. **Missing fields are repaired on import:** absent ids get fresh UUIDs,
   absent titles become "Untitled", absent timestamps are filled with the
   import time. Prefer emitting complete entries anyway.
7. **Encoding** is UTF-8. Article titles and content may use any language.

## Example article content

` + "```" + `html
<h2>Overview</h2>
<p>See <a data-article-title="Related Topic" href="#/Related%20Topic">Related Topic</a>.</p>
<figure><img src="data:image/png;base64,..."/><figcaption>Diagram</figcaption></figure>
<blockquote>Quoted passage.</blockquote>
` + "```" + `
`
