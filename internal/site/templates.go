package site

// cssContent is the stylesheet for the catalog page and README pages.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #f5f5f5;
  --surface: #ffffff;
  --text: #151515;
  --muted: #6a6e73;
  --border: #d2d2d2;
  --accent: #ee0000;
  --accent-dark: #a60000;
  --code-bg: #1f1f1f;
  --code-text: #e0e0e0;
  --radius: 6px;
  --shadow: 0 1px 3px rgba(0, 0, 0, 0.12);
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: "Red Hat Text", -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.5;
}

/* ============ Header ============ */
.site-header {
  background: var(--text);
  color: #fff;
  padding: 2rem 1.5rem 1.5rem;
}
.site-header h1 { margin: 0 0 0.25rem; font-size: 1.75rem; }
.site-header .subtitle { margin: 0 0 1rem; color: var(--border); }

.search-form input {
  width: 100%;
  max-width: 40rem;
  padding: 0.6rem 0.8rem;
  font-size: 1rem;
  border: 1px solid var(--border);
  border-radius: var(--radius);
}

.toolbar { display: flex; flex-wrap: wrap; gap: 0.5rem; margin-top: 1rem; }
.badge {
  background: rgba(255, 255, 255, 0.1);
  border-radius: 999px;
  padding: 0.2rem 0.8rem;
  font-size: 0.85rem;
}
.badge-value { font-weight: 700; }

/* ============ Sections & grids ============ */
main { max-width: 80rem; margin: 0 auto; padding: 1.5rem; }

.section-header { cursor: pointer; user-select: none; }
.section-header::before { content: "\25BE  "; color: var(--muted); }
.collapsed > .section-header::before { content: "\25B8  "; }
.collapsed > .section-body { display: none; }
.count { color: var(--muted); font-weight: 400; }

.grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(18rem, 1fr));
  gap: 1rem;
}
.no-results { color: var(--border); }

.card {
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  box-shadow: var(--shadow);
  padding: 1rem 1.25rem;
  display: flex;
  flex-direction: column;
}
.card h3 { margin: 0 0 0.25rem; }
.card .version, .card .pack-tag, .card .container { color: var(--muted); margin: 0 0 0.5rem; font-size: 0.9rem; }
.card .description { flex: 1; }
.card .stats { display: flex; gap: 1rem; font-size: 0.85rem; color: var(--muted); margin-bottom: 0.75rem; }

.button, .copy-btn, .toggle-text {
  display: inline-block;
  background: var(--accent);
  color: #fff;
  border: none;
  border-radius: var(--radius);
  padding: 0.4rem 0.9rem;
  cursor: pointer;
  text-decoration: none;
  font-size: 0.9rem;
  align-self: flex-start;
}
.button:hover, .copy-btn:hover { background: var(--accent-dark); }
.toggle-text { background: none; color: var(--accent); padding: 0; font-size: 0.85rem; }
.copy-btn.copied { background: #3e8635; }
.copy-btn.copy-failed { background: var(--muted); }

.error-banner { font-weight: 600; }

/* ============ Modals ============ */
.modal {
  position: fixed;
  inset: 0;
  z-index: 100;
  background: rgba(0, 0, 0, 0.55);
  overflow-y: auto;
}
.modal-content {
  background: var(--surface);
  max-width: 52rem;
  margin: 4rem auto;
  padding: 1.5rem 2rem;
  border-radius: var(--radius);
  position: relative;
}
.close {
  position: absolute;
  top: 0.75rem;
  right: 1rem;
  font-size: 1.75rem;
  cursor: pointer;
  color: var(--muted);
}
.close:hover { color: var(--text); }

.detail-header { display: flex; align-items: baseline; gap: 0.75rem; flex-wrap: wrap; }
.detail-header h2 { margin: 0; }
.version-badge, .model-badge {
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 999px;
  padding: 0 0.6rem;
  font-size: 0.8rem;
}
.readme-link { color: var(--accent); font-size: 0.9rem; }
.item-list li, .doc-list > li { margin-bottom: 0.5rem; }
.doc-category h4 { margin: 0.75rem 0 0.25rem; }
.doc-title { font-weight: 600; }

.code-block { position: relative; }
.code-block pre {
  background: var(--code-bg);
  color: var(--code-text);
  padding: 1rem;
  border-radius: var(--radius);
  overflow-x: auto;
}
.code-block .copy-btn { position: absolute; top: 0.5rem; right: 0.5rem; }

/* ============ README pages ============ */
.readme { max-width: 52rem; margin: 0 auto; padding: 1.5rem; background: var(--surface); }
.readme pre { padding: 1rem; border-radius: var(--radius); overflow-x: auto; }
.readme table { border-collapse: collapse; }
.readme th, .readme td { border: 1px solid var(--border); padding: 0.3rem 0.6rem; }

.site-footer { text-align: center; color: var(--muted); font-size: 0.8rem; padding: 2rem 0; }
`

// jsContent enhances the server-rendered page: search-as-you-type over the
// rendered cards, detail modals cloned from pre-rendered templates, modal
// dismissal, expandable text, collapsible sections, copy and live reload.
// All data reaches the DOM through textContent or cloned Go-rendered nodes.
const jsContent = `(function() {
  "use strict";

  var body = document.body;
  var revertMs = parseInt(body.getAttribute("data-copy-revert-ms"), 10) || 2000;
  var modals = Array.prototype.slice.call(document.querySelectorAll(".modal"));

  // ===== Modal controller =====
  var locked = false;
  var savedOverflow = "";

  modals.forEach(function(m) {
    if (m.style.display === "block") {
      locked = true;
    }
  });

  function openModal(modal) {
    modals.forEach(function(m) { if (m !== modal) { m.style.display = "none"; } });
    if (!locked) {
      savedOverflow = body.style.overflow;
      locked = true;
    }
    modal.style.display = "block";
    modal.setAttribute("aria-hidden", "false");
    body.style.overflow = "hidden";
  }

  function closeModals() {
    modals.forEach(function(m) {
      m.style.display = "none";
      m.setAttribute("aria-hidden", "true");
    });
    if (locked) {
      body.style.overflow = savedOverflow;
      locked = false;
      savedOverflow = "";
    }
    if (window.history && window.history.replaceState) {
      var params = new URLSearchParams(window.location.search);
      if (params.has("pack") || params.has("server")) {
        params.delete("pack");
        params.delete("server");
        params.delete("server_pack");
        var qs = params.toString();
        window.history.replaceState(null, "", window.location.pathname + (qs ? "?" + qs : ""));
      }
    }
  }

  function findTemplate(kind, name, pack) {
    var tpls = document.querySelectorAll("#detail-templates template");
    for (var i = 0; i < tpls.length; i++) {
      var t = tpls[i];
      if (t.getAttribute("data-kind") !== kind) { continue; }
      if (kind === "pack" && t.getAttribute("data-pack") === name) { return t; }
      if (kind === "server" && t.getAttribute("data-server") === name && t.getAttribute("data-pack") === pack) { return t; }
    }
    return null;
  }

  function showDetail(kind, name, pack) {
    var tpl = findTemplate(kind, name, pack);
    if (!tpl) { return false; }
    var target = document.getElementById(kind === "pack" ? "pack-details" : "mcp-details");
    target.textContent = "";
    target.appendChild(tpl.content.cloneNode(true));
    openModal(document.getElementById(kind === "pack" ? "pack-modal" : "mcp-modal"));
    return true;
  }

  // ===== Search =====
  var input = document.getElementById("searchInput");
  var serverQuery = body.getAttribute("data-query") || "";
  var submitTimer = null;

  function filterGrid(gridId, countId, cardClass, q, emptyText) {
    var grid = document.getElementById(gridId);
    var cards = grid.querySelectorAll("." + cardClass);
    var visible = [];
    cards.forEach(function(card) {
      var match = !q || (card.getAttribute("data-search") || "").indexOf(q) !== -1;
      card.style.display = match ? "" : "none";
      if (match) { visible.push(card); }
    });
    var placeholder = grid.querySelector(".no-results");
    if (cards.length > 0) {
      if (visible.length === 0 && !placeholder) {
        placeholder = document.createElement("p");
        placeholder.className = "no-results";
        placeholder.textContent = emptyText;
        grid.appendChild(placeholder);
      } else if (visible.length > 0 && placeholder) {
        grid.removeChild(placeholder);
      }
    }
    document.getElementById(countId).textContent = "(" + visible.length + ")";
    return visible;
  }

  function sum(cards, attr) {
    return cards.reduce(function(acc, c) { return acc + (parseInt(c.getAttribute(attr), 10) || 0); }, 0);
  }

  function setBadge(id, value) {
    var el = document.getElementById(id);
    if (el) { el.textContent = String(value); }
  }

  function handleSearch() {
    var q = input.value.toLowerCase().trim();
    if (serverQuery) {
      clearTimeout(submitTimer);
      submitTimer = setTimeout(function() { input.form.submit(); }, 400);
      return;
    }
    var packs = filterGrid("packs-grid", "packs-count", "pack-card", q, "No packs found matching your search.");
    var servers = filterGrid("mcp-grid", "mcp-count", "mcp-card", q, "No MCP servers found matching your search.");
    setBadge("stat-packs", packs.length);
    setBadge("stat-skills", sum(packs, "data-skills"));
    setBadge("stat-agents", sum(packs, "data-agents"));
    setBadge("stat-docs", sum(packs, "data-docs"));
    setBadge("stat-servers", servers.length);
  }

  if (input) {
    input.addEventListener("input", handleSearch);
  }

  // ===== Copy to clipboard =====
  function acknowledge(button, ok) {
    clearTimeout(button._revertTimer);
    button.textContent = ok ? "Copied!" : "Copy failed";
    button.classList.toggle("copied", ok);
    button.classList.toggle("copy-failed", !ok);
    button._revertTimer = setTimeout(function() {
      button.textContent = "Copy";
      button.classList.remove("copied", "copy-failed");
    }, revertMs);
  }

  function copyCode(button) {
    var code = button.parentElement.querySelector("code");
    var text = code ? code.textContent : "";
    if (!navigator.clipboard) {
      acknowledge(button, false);
      return;
    }
    navigator.clipboard.writeText(text).then(
      function() { acknowledge(button, true); },
      function() { acknowledge(button, false); }
    );
  }

  // ===== Expandable text =====
  function setExpanded(box, expanded) {
    var collapsedView = box.querySelector(":scope > .text-collapsed");
    var expandedView = box.querySelector(":scope > .text-expanded");
    if (!collapsedView || !expandedView) { return; }
    collapsedView.style.display = expanded ? "none" : "";
    expandedView.style.display = expanded ? "" : "none";
    box.setAttribute("data-expanded", expanded ? "true" : "false");
  }

  // ===== Event delegation =====
  document.addEventListener("click", function(event) {
    var target = event.target;
    if (target.classList && target.classList.contains("modal")) {
      closeModals();
      return;
    }
    if (target.closest && target.closest(".modal .close")) {
      closeModals();
      return;
    }
    var ctl = target.closest ? target.closest("[data-action]") : null;
    if (!ctl) { return; }
    var action = ctl.getAttribute("data-action");
    switch (action) {
      case "show-pack":
        if (showDetail("pack", ctl.getAttribute("data-pack"))) { event.preventDefault(); }
        break;
      case "show-server":
        if (showDetail("server", ctl.getAttribute("data-server"), ctl.getAttribute("data-pack"))) { event.preventDefault(); }
        break;
      case "expand":
      case "collapse":
        var box = ctl.closest(".expandable");
        if (box) { setExpanded(box, action === "expand"); }
        break;
      case "toggle-section":
        ctl.parentElement.classList.toggle("collapsed");
        break;
      case "copy":
        copyCode(ctl);
        break;
    }
  });

  document.addEventListener("keydown", function(event) {
    if (event.key === "Escape") {
      closeModals();
    }
    if (event.key === "Enter" && event.target.classList && event.target.classList.contains("close")) {
      closeModals();
    }
  });

  // ===== Live reload =====
  if (body.getAttribute("data-live-reload") === "true" && window.WebSocket) {
    var proto = window.location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + window.location.host + "/ws/reload");
    ws.onmessage = function(msg) {
      if (msg.data === "reload") { window.location.reload(); }
    };
  }
})();
`
