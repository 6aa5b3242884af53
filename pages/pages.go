package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>storelink</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        input[type=text] {
            width: 100%;
            padding: 8px;
            margin: 8px 0;
        }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
            background: #f4f4f4;
            padding: 12px;
        }
    </style>
</head>
<body>
    <h1>storelink</h1>
    <p>Paste a Spotify playlist link to get Apple Music and Bandcamp links for every track.</p>
    <input type="text" id="playlist" placeholder="https://open.spotify.com/playlist/...">
    <button onclick="lookup()">Find links</button>
    <pre id="output"></pre>
    <script>
        async function lookup() {
            const output = document.getElementById('output');
            output.textContent = 'Working...';
            const resp = await fetch('/playlist/links', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({playlistUrl: document.getElementById('playlist').value})
            });
            output.textContent = JSON.stringify(await resp.json(), null, 2);
        }
    </script>
</body>
</html>`
