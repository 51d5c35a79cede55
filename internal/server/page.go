package server

// indexHTML is the upload page: pick PDFs, preview the extracted rows,
// download the workbook.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice to Excel Converter</title>
<style>
  body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
  table { border-collapse: collapse; margin-top: 1rem; font-size: 0.8rem; }
  th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; white-space: nowrap; }
  #status { margin: 1rem 0; }
  #tablewrap { overflow-x: auto; }
</style>
</head>
<body>
<h1>Invoice to Excel Converter</h1>
<p>Upload your PDF invoices below to extract key details into an Excel sheet.</p>
<form id="form">
  <input type="file" id="files" name="files" accept=".pdf" multiple>
  <button type="submit">Extract</button>
  <button type="button" id="download" disabled>Download Excel</button>
</form>
<div id="status"></div>
<div id="tablewrap"></div>
<script>
const form = document.getElementById('form');
const status = document.getElementById('status');
const wrap = document.getElementById('tablewrap');
const dl = document.getElementById('download');

function formData() {
  const fd = new FormData();
  for (const f of document.getElementById('files').files) fd.append('files', f);
  return fd;
}

form.addEventListener('submit', async (ev) => {
  ev.preventDefault();
  status.textContent = 'Extracting data from invoices...';
  wrap.innerHTML = '';
  dl.disabled = true;
  const resp = await fetch('/preview', { method: 'POST', body: formData() });
  const body = await resp.json();
  if (!resp.ok) { status.textContent = body.error || 'extraction failed'; return; }
  status.textContent = 'Extracted ' + body.summary.rows + ' rows from ' + body.summary.documents + ' PDF(s).';
  const table = document.createElement('table');
  const head = table.insertRow();
  for (const c of body.columns) {
    const th = document.createElement('th');
    th.textContent = c;
    head.appendChild(th);
  }
  for (const row of body.rows) {
    const tr = table.insertRow();
    for (const c of body.columns) tr.insertCell().textContent = row[c];
  }
  wrap.appendChild(table);
  dl.disabled = false;
});

dl.addEventListener('click', async () => {
  const resp = await fetch('/extract', { method: 'POST', body: formData() });
  if (!resp.ok) { status.textContent = 'download failed'; return; }
  const blob = await resp.blob();
  const a = document.createElement('a');
  a.href = URL.createObjectURL(blob);
  a.download = 'invoice_summary.xlsx';
  a.click();
  URL.revokeObjectURL(a.href);
});
</script>
</body>
</html>
`
