package scheduler_test

const whatsNewIndexHTML = `<html><body>
<div class="toctree-wrapper compound">
<ul>
<li class="toctree-l1"><a class="reference internal" href="3.13.html">What's New In Python 3.13</a></li>
<li class="toctree-l1"><a class="reference internal" href="3.12.html">What's New In Python 3.12</a></li>
<li class="toctree-l1"><a class="reference internal" href="3.11.html">What's New In Python 3.11</a></li>
</ul>
</div>
</body></html>`

const whatsNew313HTML = `<html><body><section>
<h1>What's New In Python 3.13</h1>
<dl class="field-list simple">
<dt>Editors</dt>
<dd>Adam Turner and Thomas Wouters</dd>
</dl>
</section></body></html>`

const whatsNew311HTML = `<html><body><section>
<h1>What's New In Python 3.11</h1>
<dl class="field-list simple">
<dt>Editor</dt>
<dd>Pablo Galindo Salgado</dd>
</dl>
</section></body></html>`

const versionPageWithoutDLHTML = `<html><body><h1>What's New In Python 3.12</h1></body></html>`

const mainPageHTML = `<html><body>
<div class="sphinxsidebar"><div class="sphinxsidebarwrapper">
<ul><li><a href="download.html">Download these documents</a></li></ul>
<ul>
<li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
<li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
<li><a href="https://www.python.org/doc/versions/">All versions</a></li>
</ul>
</div></div>
</body></html>`

const mainPageWithoutMarkerHTML = `<html><body>
<div class="sphinxsidebar"><div class="sphinxsidebarwrapper">
<ul><li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li></ul>
</div></div>
</body></html>`

const downloadPageHTML = `<html><body>
<table class="docutils">
<tr><td>PDF (US-Letter)</td><td><a href="archives/python-3.13-docs-pdf-letter.zip">Download</a></td></tr>
<tr><td>PDF (A4)</td><td><a href="archives/python-3.13-docs-pdf-a4.zip">Download</a></td></tr>
</table>
</body></html>`

const archivePath = "/3/archives/python-3.13-docs-pdf-a4.zip"

const archiveBytes = "PK\x03\x04 python documentation archive"

// pepIndexHTML has two tables. PEP 8 is listed as Final but its page says
// Active, and PEP 9 returns an error status.
const pepIndexHTML = `<html><body>
<section id="index-by-category">
<section id="meta">
<table><tbody>
<tr><td><abbr title="Process, Active">PA</abbr></td><td><a class="pep reference internal" href="pep-0001/">1</a></td><td><a class="pep reference internal" href="pep-0001/">PEP Purpose</a></td></tr>
<tr><td><abbr title="Informational, Final">IF</abbr></td><td><a class="pep reference internal" href="pep-0008/">8</a></td></tr>
<tr><td><abbr title="Process, Withdrawn">PW</abbr></td><td><a class="pep reference internal" href="pep-0009/">9</a></td></tr>
</tbody></table>
</section>
<section id="finished">
<table><tbody>
<tr><td><abbr title="Standards Track, Final">SF</abbr></td><td><a class="pep reference internal" href="pep-0020/">20</a></td></tr>
<tr><td><abbr title="Standards Track, Final">SF</abbr></td><td><a class="pep reference internal" href="pep-0257/">257</a></td></tr>
<tr><td><abbr title="Standards Track, Final">SF</abbr></td><td><a class="pep reference internal" href="pep-0343/">343</a></td></tr>
</tbody></table>
</section>
</section>
</body></html>`

func pepPageHTML(status string) string {
	return `<html><body>
<dl class="rfc2822 field-list simple">
<dt>Author:</dt><dd><abbr>GvR</abbr></dd>
<dt>Status:</dt><dd><abbr title="Proposal status">` + status + `</abbr></dd>
</dl>
</body></html>`
}

const pepPageWithoutStatusHTML = `<html><body><p>No status here.</p></body></html>`
