package http

// Embedded page assets for the single-page web client. Kept as plain
// strings so the binary stays self-contained.

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>PDF to Presentation</title>
  <link rel="stylesheet" href="/assets/app.css">
</head>
<body>
  <main class="container">
    <h1>PDF to Presentation Converter</h1>
    <p class="subtitle">Upload a PDF and get a slide deck back.</p>
    <p id="backend-status" class="status-badge">checking backend&hellip;</p>

    <form id="upload-form">
      <input type="file" id="file-input" accept="application/pdf">
      <button type="submit" id="submit-btn">Convert to Presentation</button>
    </form>

    <p id="phase" class="phase" hidden></p>
    <p id="error" class="error" hidden></p>

    <section id="result" hidden>
      <h2>Slide Preview</h2>
      <div id="preview"></div>
      <a id="download-link" href="/download" target="_blank" rel="noopener">Download Presentation</a>
    </section>
  </main>
  <script src="/assets/app.js"></script>
</body>
</html>
`

const appCSS = `body {
  font-family: system-ui, -apple-system, sans-serif;
  background: #f5f6f8;
  color: #1f2430;
  margin: 0;
}

.container {
  max-width: 720px;
  margin: 3rem auto;
  padding: 2rem;
  background: #fff;
  border-radius: 8px;
  box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08);
}

.subtitle {
  color: #5a6270;
}

.status-badge {
  font-size: 0.85rem;
  color: #5a6270;
}

#upload-form {
  display: flex;
  gap: 0.75rem;
  align-items: center;
  margin: 1.5rem 0;
}

#submit-btn {
  padding: 0.5rem 1.25rem;
  border: none;
  border-radius: 4px;
  background: #2563eb;
  color: #fff;
  cursor: pointer;
}

#submit-btn:disabled {
  background: #9db4e8;
  cursor: not-allowed;
}

.phase {
  color: #2563eb;
}

.error {
  color: #b91c1c;
  background: #fee2e2;
  padding: 0.5rem 0.75rem;
  border-radius: 4px;
}

#preview h2 {
  border-bottom: 1px solid #e2e5ea;
  padding-bottom: 0.25rem;
}

#download-link {
  display: inline-block;
  margin-top: 1rem;
  color: #2563eb;
}
`

const appJS = `(function () {
  var form = document.getElementById('upload-form');
  var fileInput = document.getElementById('file-input');
  var submitBtn = document.getElementById('submit-btn');
  var phaseEl = document.getElementById('phase');
  var errorEl = document.getElementById('error');
  var resultEl = document.getElementById('result');
  var previewEl = document.getElementById('preview');
  var backendEl = document.getElementById('backend-status');

  var phaseText = {
    uploading: 'Uploading PDF…',
    processing: 'Generating slides…'
  };

  function showError(message) {
    errorEl.textContent = message;
    errorEl.hidden = !message;
  }

  function showPhase(state) {
    var text = phaseText[state];
    phaseEl.textContent = text || '';
    phaseEl.hidden = !text;
    submitBtn.disabled = !!text;
  }

  function applySnapshot(snap) {
    if (!snap) return;
    showPhase(snap.state);
    showError(snap.error || '');
    if (snap.state === 'ready' && snap.presentation) {
      loadPreview();
    } else {
      resultEl.hidden = true;
    }
  }

  function loadPreview() {
    fetch('/api/preview')
      .then(function (res) { return res.json(); })
      .then(function (body) {
        previewEl.innerHTML = body.html || '';
        resultEl.hidden = false;
      })
      .catch(function () {
        resultEl.hidden = true;
      });
  }

  function connectSocket() {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(proto + '//' + location.host + '/ws');
    ws.onmessage = function (msg) {
      try {
        var event = JSON.parse(msg.data);
        applySnapshot(event.session);
      } catch (e) {
        // Ignore malformed frames.
      }
    };
    ws.onclose = function () {
      setTimeout(connectSocket, 2000);
    };
  }

  function checkBackend() {
    fetch('/api/health')
      .then(function (res) { return res.json(); })
      .then(function (body) {
        backendEl.textContent = body.backend === 'ok'
          ? 'backend connected'
          : 'backend unreachable — conversions will fail';
      })
      .catch(function () {
        backendEl.textContent = 'backend unreachable — conversions will fail';
      });
  }

  form.addEventListener('submit', function (e) {
    e.preventDefault();

    var file = fileInput.files[0];
    if (!file) {
      showError('Please select a file first');
      return;
    }
    if (file.type !== 'application/pdf') {
      showError('Please select a PDF file');
      return;
    }

    showError('');
    resultEl.hidden = true;
    submitBtn.disabled = true;

    var data = new FormData();
    data.append('file', file);

    fetch('/api/convert', { method: 'POST', body: data })
      .then(function (res) { return res.json(); })
      .then(applySnapshot)
      .catch(function (err) {
        showPhase('idle');
        showError(err.message || 'An unknown error occurred');
      });
  });

  connectSocket();
  checkBackend();
  fetch('/api/session')
    .then(function (res) { return res.json(); })
    .then(applySnapshot)
    .catch(function () {});
})();
`
