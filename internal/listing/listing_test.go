package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

func hrefs(links []domain.CandidateLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Href)
	}
	return out
}

func TestParse_ApacheTable(t *testing.T) {
	page := `
	<html><head><title>Index of /.git</title></head>
	<body>
		<h1>Index of /.git</h1>
		<table>
			<tr><th><a href="?C=N;O=D">Name</a></th><th><a href="?C=M;O=A">Last modified</a></th><th><a href="?C=S;O=A">Size</a></th></tr>
			<tr><td valign="top"><img src="/icons/back.gif" alt="[PARENTDIR]"></td><td><a href="/">Parent Directory</a></td><td>&nbsp;</td></tr>
			<tr><td><img src="/icons/text.gif"></td><td><a href="HEAD">HEAD</a></td><td>2024-01-01</td></tr>
			<tr><td><img src="/icons/folder.gif"></td><td><a href="objects/">objects/</a></td><td>-</td></tr>
			<tr><td><img src="/icons/folder.gif"></td><td><a href="refs/">refs/</a></td><td>-</td></tr>
		</table>
		<address>Apache/2.4.41 (Ubuntu) Server at <a href="http://example.com">example.com</a></address>
	</body></html>`

	links, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"HEAD", "objects/", "refs/"}, hrefs(links))
	assert.Equal(t, "objects/", links[1].Text)
}

func TestParse_ApachePreWithHeaderLabels(t *testing.T) {
	page := `
	<html><body>
	<h1>Index of /.git</h1>
	<pre><img src="/icons/blank.gif" alt="Icon "> <a href="?C=N;O=D">Name</a>                    <a href="?C=M;O=A">Last modified</a>      <a href="?C=S;O=A">Size</a>  <a href="?C=D;O=A">Description</a><hr><img src="/icons/back.gif" alt="[PARENTDIR]"> <a href="/">Parent Directory</a>                             -
<img src="/icons/text.gif" alt="[TXT]"> <a href="config">config</a>                  2024-01-01 10:00  92
<img src="/icons/folder.gif" alt="[DIR]"> <a href="hooks/">hooks/</a>                  2024-01-01 10:00    -
<hr></pre>
	</body></html>`

	links, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "hooks/"}, hrefs(links))
}

func TestParse_NginxPre(t *testing.T) {
	page := `
	<html><head><title>Index of /.git/</title></head>
	<body>
	<h1>Index of /.git/</h1><hr><pre><a href="../">../</a>
<a href="info/">info/</a>                                              01-Jan-2024 10:00       -
<a href="description">description</a>                                        01-Jan-2024 10:00      73
</pre><hr></body></html>`

	links, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"info/", "description"}, hrefs(links))
}

func TestParse_ListItems(t *testing.T) {
	page := `
	<html><body>
	<h1><a href="/home">Home</a></h1>
	<ul>
		<li><a href="../"> Parent Directory</a></li>
		<li><a href="packed-refs"> packed-refs</a></li>
		<li><a href="logs/"> logs/</a></li>
	</ul>
	<footer><a href="https://example.com/about">About</a></footer>
	</body></html>`

	links, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"packed-refs", "logs/"}, hrefs(links))
}

func TestParse_SkipsPlaceholdersAndAnchorsOutsideContainers(t *testing.T) {
	page := `
	<html><body>
	<div><a href="index">outside</a></div>
	<table><tr>
		<td><a href="#">#</a></td>
		<td><a name="anchor-without-href">x</a></td>
		<td><p><a href="nested">nested in p</a></p></td>
		<td><a href="ORIG_HEAD">ORIG_HEAD</a></td>
	</tr></table>
	</body></html>`

	links, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"ORIG_HEAD"}, hrefs(links))
}

func TestParse_EmptyListing(t *testing.T) {
	links, err := Parse(strings.NewReader(`<html><body><h1>Index of /.git/branches/</h1><pre></pre></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, links)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParse_ReaderError(t *testing.T) {
	_, err := New().Parse(failingReader{})
	require.Error(t, err)
}

func TestIsParentMarker(t *testing.T) {
	assert.True(t, IsParentMarker(" Parent Directory "))
	assert.True(t, IsParentMarker("../"))
	assert.False(t, IsParentMarker("objects/"))
}
