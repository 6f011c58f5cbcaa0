package extractor_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func docFromHTML(t *testing.T, rawURL string, src string) fetcher.Document {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return fetcher.NewDocumentForTest(*u, root)
}

const whatsNewIndexHTML = `<html><body>
<div class="toctree-wrapper compound">
<ul>
<li class="toctree-l1"><a class="reference internal" href="3.13.html">What's New In Python 3.13</a>
  <ul><li class="toctree-l2"><a href="3.13.html#summary">Summary</a></li></ul>
</li>
<li class="toctree-l1"><a class="reference internal" href="3.12.html">What's New In Python 3.12</a></li>
<li class="toctree-l1"><a class="reference internal" href="https://docs.python.org/3/whatsnew/changelog.html">Changelog</a></li>
</ul>
</div>
</body></html>`

const versionPageHTML = `<html><body>
<section>
<h1>What's New In Python 3.12</h1>
<dl class="field-list simple">
<dt class="field-odd">Editor</dt>
<dd class="field-odd"><p>Adam Turner</p></dd>
</dl>
<dl><dt>Second</dt></dl>
</section>
</body></html>`

const sidebarHTML = `<html><body>
<div class="sphinxsidebar"><div class="sphinxsidebarwrapper">
<h3>Download</h3>
<ul><li><a href="download.html">Download these documents</a></li></ul>
<h3>Docs by version</h3>
<ul>
<li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
<li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
<li><a href="https://docs.python.org/2.7/">Python 2.7 (EOL)</a></li>
<li><a href="https://www.python.org/doc/versions/">All versions</a></li>
</ul>
</div></div>
</body></html>`

const downloadPageHTML = `<html><body>
<table class="docutils">
<tr><td>PDF (US-Letter paper size)</td><td><a href="archives/python-3.13-docs-pdf-letter.zip">Download</a></td></tr>
<tr><td>PDF (A4 paper size)</td><td><a href="archives/python-3.13-docs-pdf-a4.zip">Download</a></td></tr>
<tr><td>HTML</td><td><a href="archives/python-3.13-docs-html.zip">Download</a></td></tr>
</table>
</body></html>`

const pepIndexHTML = `<html><body>
<section id="numerical-index"><table><tbody>
<tr><td><abbr title="Meta, Active">PA</abbr></td><td><a class="pep reference internal" href="pep-0999/">999</a></td></tr>
</tbody></table></section>
<section id="index-by-category">
<section id="meta-peps">
<table><tbody>
<tr><td><abbr title="Process, Active">PA</abbr></td><td><a class="pep reference internal" href="pep-0001/">1</a></td><td><a class="pep reference internal" href="pep-0001/">PEP Purpose and Guidelines</a></td></tr>
<tr><td><abbr title="Informational, Final">IF</abbr></td><td><a class="pep reference internal" href="pep-0008/">8</a></td><td>Style Guide</td></tr>
</tbody></table>
</section>
<section id="provisional">
<table><tbody>
<tr><td><abbr title="Standards Track, Draft">S</abbr></td><td><a class="pep reference internal" href="pep-0750/">750</a></td></tr>
<tr><td><abbr title="Standards Track, Rejected">SR</abbr></td></tr>
</tbody></table>
</section>
</section>
</body></html>`

const pepPageHTML = `<html><body>
<dl class="rfc2822 field-list simple">
<dt class="field-odd">Author<span class="colon">:</span></dt>
<dd class="field-odd"><abbr>GvR</abbr></dd>
<dt class="field-even">Status<span class="colon">:</span></dt>
<dd class="field-even"><abbr title="Accepted and implementation complete, or no longer active">Final</abbr></dd>
</dl>
</body></html>`
