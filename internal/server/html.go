package server

const dashboardHTML = `<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Newswatch Kepri</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', -apple-system, system-ui, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; }
        .header { background: linear-gradient(135deg, #1e293b, #334155); padding: 1.5rem 2rem; border-bottom: 1px solid #475569; display: flex; justify-content: space-between; align-items: center; }
        .header h1 { font-size: 1.5rem; background: linear-gradient(135deg, #38bdf8, #818cf8); background-clip: text; -webkit-background-clip: text; -webkit-text-fill-color: transparent; }
        .header .status { padding: 0.5rem 1rem; border-radius: 9999px; font-size: 0.875rem; font-weight: 600; }
        .status.running { background: #166534; color: #4ade80; }
        .status.idle { background: #854d0e; color: #fde047; }
        .panel { background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.5rem; margin: 1rem 2rem; }
        .panel h2 { font-size: 1rem; color: #94a3b8; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 1rem; }
        form { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 1rem; align-items: end; }
        label { display: block; font-size: 0.75rem; color: #94a3b8; margin-bottom: 0.25rem; }
        input, select { width: 100%; padding: 0.5rem; background: #0f172a; border: 1px solid #475569; border-radius: 8px; color: #e2e8f0; }
        select[multiple] { height: 7rem; }
        .check { display: flex; align-items: center; gap: 0.5rem; }
        .check input { width: auto; }
        button { padding: 0.6rem 1.5rem; background: linear-gradient(135deg, #38bdf8, #818cf8); border: none; border-radius: 8px; color: #0f172a; font-weight: 700; cursor: pointer; }
        button:disabled { opacity: 0.5; cursor: wait; }
        button.ghost { background: #334155; color: #e2e8f0; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; }
        .card { background: #0f172a; border: 1px solid #334155; border-radius: 12px; padding: 1rem; }
        .card .label { font-size: 0.7rem; text-transform: uppercase; letter-spacing: 0.05em; color: #94a3b8; }
        .card .value { font-size: 1.6rem; font-weight: 700; color: #f1f5f9; }
        table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }
        th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #334155; vertical-align: top; }
        th { color: #94a3b8; font-size: 0.75rem; text-transform: uppercase; }
        td a { color: #38bdf8; text-decoration: none; }
        .cloud { line-height: 2.4; text-align: center; }
        .cloud span { margin: 0 0.4rem; color: #818cf8; }
        .bar-row { display: grid; grid-template-columns: 8rem 1fr 3rem; gap: 0.5rem; align-items: center; margin-bottom: 0.35rem; font-size: 0.8rem; }
        .bar { height: 0.9rem; background: linear-gradient(90deg, #38bdf8, #818cf8); border-radius: 4px; }
        .sent { display: flex; gap: 1rem; }
        .sent .pos { color: #4ade80; } .sent .neg { color: #f87171; } .sent .neu { color: #fde047; }
        .error { color: #f87171; margin-top: 0.5rem; }
        .footer { text-align: center; padding: 1rem; color: #475569; font-size: 0.75rem; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Newswatch Kepri</h1>
        <span class="status idle" id="status">Idle</span>
    </div>

    <div class="panel">
        <h2>Pencarian Berita</h2>
        <form id="search-form">
            <div>
                <label for="keywords">Kata kunci (pisahkan dengan koma)</label>
                <input id="keywords" type="text" placeholder="banjir, investasi">
            </div>
            <div>
                <label for="sources">Sumber berita</label>
                <select id="sources" multiple></select>
            </div>
            <div>
                <label for="start">Tanggal mulai</label>
                <input id="start" type="date">
            </div>
            <div>
                <label for="end">Tanggal akhir</label>
                <input id="end" type="date">
            </div>
            <div class="check">
                <input id="kepri" type="checkbox" checked>
                <label for="kepri">Hanya berita Kepri</label>
            </div>
            <div>
                <button type="submit" id="run">Cari</button>
                <button type="button" class="ghost" id="download" disabled>Unduh CSV</button>
            </div>
        </form>
        <div class="error" id="error"></div>
    </div>

    <div class="panel">
        <h2>Ringkasan</h2>
        <div class="grid">
            <div class="card"><div class="label">Artikel</div><div class="value" id="n-articles">0</div></div>
            <div class="card"><div class="label">Gagal Diambil</div><div class="value" id="n-fetch">0</div></div>
            <div class="card"><div class="label">Gagal Diurai</div><div class="value" id="n-parse">0</div></div>
            <div class="card"><div class="label">Tersaring</div><div class="value" id="n-filtered">0</div></div>
            <div class="card"><div class="label">Duplikat</div><div class="value" id="n-dup">0</div></div>
            <div class="card"><div class="label">Durasi</div><div class="value" id="n-duration">-</div></div>
        </div>
        <div class="sent" style="margin-top:1rem">
            <span class="pos">Positif: <b id="s-pos">0</b></span>
            <span class="neg">Negatif: <b id="s-neg">0</b></span>
            <span class="neu">Netral: <b id="s-neu">0</b></span>
        </div>
    </div>

    <div class="panel">
        <h2>Kata Terpopuler</h2>
        <div class="cloud" id="cloud"></div>
        <div id="bars" style="margin-top:1rem"></div>
    </div>

    <div class="panel">
        <h2>Hasil</h2>
        <table>
            <thead><tr><th>Judul</th><th>Tanggal</th><th>Sumber</th><th>Kategori</th><th>Kata Kunci</th></tr></thead>
            <tbody id="results"></tbody>
        </table>
    </div>

    <div class="footer">Newswatch — pemantau berita Kepulauan Riau</div>

    <script>
        const el = id => document.getElementById(id);

        async function loadSources() {
            const r = await fetch('/api/sources');
            const d = await r.json();
            el('sources').innerHTML = d.sources.map(s => '<option value="' + s + '">' + s + '</option>').join('');
        }

        async function refreshResults() {
            const r = await fetch('/api/results');
            if (!r.ok) return;
            const d = await r.json();
            el('n-articles').textContent = d.articles.length;
            el('n-fetch').textContent = d.skipped.fetch_failures;
            el('n-parse').textContent = d.skipped.parse_failures;
            el('n-filtered').textContent = d.skipped.filtered;
            el('n-dup').textContent = d.skipped.duplicates;
            el('results').innerHTML = d.articles.map(a =>
                '<tr><td><a href="' + a.link + '" target="_blank" rel="noopener">' + a.title + '</a></td>' +
                '<td>' + a.publish_date.slice(0, 10) + '</td>' +
                '<td>' + a.source + '</td><td>' + a.category + '</td><td>' + (a.keyword || '-') + '</td></tr>'
            ).join('');
            el('download').disabled = d.articles.length === 0;
        }

        async function refreshFrequencies() {
            const r = await fetch('/api/frequencies?top=40');
            if (!r.ok) return;
            const d = await r.json();
            const terms = d.terms || [];
            if (terms.length === 0) { el('cloud').innerHTML = ''; el('bars').innerHTML = ''; return; }
            const max = terms[0].count;
            el('cloud').innerHTML = terms.map(t => {
                const size = 0.8 + (t.count / max) * 1.8;
                return '<span style="font-size:' + size.toFixed(2) + 'rem">' + t.term + '</span>';
            }).join(' ');
            el('bars').innerHTML = terms.slice(0, 10).map(t =>
                '<div class="bar-row"><span>' + t.term + '</span>' +
                '<div class="bar" style="width:' + (t.count / max * 100).toFixed(1) + '%"></div>' +
                '<span>' + t.count + '</span></div>'
            ).join('');
        }

        async function refreshSentiment() {
            const r = await fetch('/api/sentiment');
            if (!r.ok) return;
            const d = await r.json();
            el('s-pos').textContent = d.positive + ' (' + d.positive_pct + '%)';
            el('s-neg').textContent = d.negative + ' (' + d.negative_pct + '%)';
            el('s-neu').textContent = d.neutral + ' (' + d.neutral_pct + '%)';
        }

        el('search-form').addEventListener('submit', async e => {
            e.preventDefault();
            el('error').textContent = '';
            el('run').disabled = true;
            el('status').textContent = 'Running';
            el('status').className = 'status running';

            const body = {
                keywords: el('keywords').value.split(',').map(s => s.trim()).filter(Boolean),
                sources: Array.from(el('sources').selectedOptions).map(o => o.value),
                start_date: el('start').value,
                end_date: el('end').value,
                kepri_only: el('kepri').checked
            };

            try {
                const r = await fetch('/api/search', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(body)
                });
                const d = await r.json();
                if (!r.ok) throw new Error(d.error || 'search failed');
                el('n-duration').textContent = d.duration;
                await Promise.all([refreshResults(), refreshFrequencies(), refreshSentiment()]);
            } catch (err) {
                el('error').textContent = err.message;
            } finally {
                el('run').disabled = false;
                el('status').textContent = 'Idle';
                el('status').className = 'status idle';
            }
        });

        el('download').addEventListener('click', () => { window.location = '/api/results.csv'; });

        loadSources();
        refreshResults().then(() => Promise.all([refreshFrequencies(), refreshSentiment()]));
    </script>
</body>
</html>`
