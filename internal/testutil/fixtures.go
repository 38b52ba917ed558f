// internal/testutil/fixtures.go
package testutil

// Fixture data for tests (primitive values only, no domain imports).

// FixtureTemplatesJSON is a small template file in the JSON layout.
const FixtureTemplatesJSON = `{
  "movie_templates": [
    "https://yts.mx/browse-movies/{}/all/all/0/latest/0/all",
    "https://www.1337x.to/search/{}/1/"
  ],
  "subtitle_templates": [
    "https://www.opensubtitles.org/en/search2/moviename-{}",
    "https://subscene.com/subtitles/searchbytitle?query={}"
  ]
}`

// FixtureTemplatesYAML is FixtureTemplatesJSON in the YAML layout.
const FixtureTemplatesYAML = `movie_templates:
  - "https://yts.mx/browse-movies/{}/all/all/0/latest/0/all"
  - "https://www.1337x.to/search/{}/1/"
subtitle_templates:
  - "https://www.opensubtitles.org/en/search2/moviename-{}"
  - "https://subscene.com/subtitles/searchbytitle?query={}"
`

// FixtureUserAgents is an identity file with blank lines and padding.
const FixtureUserAgents = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36

   Mozilla/5.0 (Macintosh; Intel Mac OS X 14_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15
Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0

`

// FixtureUserAgentCount is the number of non-blank lines in FixtureUserAgents.
const FixtureUserAgentCount = 3
