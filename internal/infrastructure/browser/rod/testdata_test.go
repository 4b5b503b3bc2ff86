package rod

// Тестовые страницы.
const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="testForm" aria-label="Login">
		<label id="user-label" for="username">User</label>
		<input id="username" type="text" aria-describedby="user-hint" required />
		<span id="user-hint">Your e-mail address</span>
		<button id="submit" type="submit">Submit</button>
	</form>
</body>
</html>`

	TabsHTML = `<!DOCTYPE html>
<html>
<body>
	<div role="tablist" aria-label="Sections">
		<div role="tab" id="tab1" tabindex="0" aria-selected="true" aria-controls="panel1">One</div>
		<div role="tab" id="tab2" aria-selected="false" aria-controls="panel2">Two</div>
	</div>
	<div role="tabpanel" id="panel1">First panel</div>
	<div role="tabpanel" id="panel2" hidden>Second panel</div>
</body>
</html>`

	ListHTML = `<!DOCTYPE html>
<html>
<body>
	<ul>
		<li aria-posinset="2" aria-setsize="5">Item <span id="target" tabindex="-1">focus me</span></li>
	</ul>
</body>
</html>`

	LinksHTML = `<!DOCTYPE html>
<html>
<body>
	<h2 id="intro" class="title main" tabindex="-1">Introduction</h2>
	<a id="more" class="nav external" href="/docs">Docs</a>
	<input id="email" type="email" aria-label="E-mail" />
</body>
</html>`
)
