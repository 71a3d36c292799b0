package handler

import (
	"github.com/gofiber/fiber/v2"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/usecase"
)

type LogHandler struct {
	usecase usecase.RenderUsecase
}

func NewLogHandler(usecase usecase.RenderUsecase) *LogHandler {
	return &LogHandler{usecase: usecase}
}

// LogViewer serves the HTML page for viewing render logs
func (h *LogHandler) LogViewer(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(logViewerHTML)
}

// GetLogs godoc
// @Summary Recent render logs
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/logs [get]
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.usecase.RecentLogs(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse(entity.CodeInternalError, err.Error()),
		)
	}
	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}

const logViewerHTML = `<!DOCTYPE html>
<html lang="th">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Render Log Viewer</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #1a1a2e; color: #eee; padding: 20px; }
        h1 { color: #00d4ff; margin-bottom: 20px; }
        .toolbar { margin-bottom: 20px; display: flex; gap: 10px; }
        select, button { padding: 10px 16px; font-size: 15px; border-radius: 8px; border: 2px solid #00d4ff; background: #16213e; color: #fff; }
        button { background: #00d4ff; color: #000; font-weight: bold; cursor: pointer; }
        table { width: 100%; border-collapse: collapse; background: #16213e; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #0f3460; }
        th { background: #0f3460; color: #00d4ff; position: sticky; top: 0; }
        .status-SUCCESS { color: #00ff88; font-weight: bold; }
        .status-ERROR { color: #ff4757; font-weight: bold; }
        .loading { text-align: center; padding: 40px; color: #888; }
    </style>
</head>
<body>
    <h1>Render Log Viewer</h1>
    <div class="toolbar">
        <select id="limit">
            <option>50</option>
            <option>200</option>
            <option>500</option>
        </select>
        <button onclick="load()">Reload</button>
    </div>
    <div id="table"><p class="loading">Loading...</p></div>
    <script>
        function escapeHtml(str) {
            if (!str) return '';
            return String(str).replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
        }

        async function load() {
            const limit = document.getElementById('limit').value;
            const target = document.getElementById('table');
            try {
                const res = await fetch('/api/v1/logs?limit=' + limit, { headers: authHeaders() });
                const data = await res.json();
                if (!data.success || !data.data || data.data.length === 0) {
                    target.innerHTML = '<p class="loading">No logs found</p>';
                    return;
                }
                let html = '<table><thead><tr><th>ID</th><th>Render ID</th><th>Time</th><th>Operation</th><th>Status</th><th>Error</th><th>Pages</th><th>Bytes</th><th>Duration</th></tr></thead><tbody>';
                data.data.forEach(log => {
                    html += '<tr>' +
                        '<td>' + log.id + '</td>' +
                        '<td>' + escapeHtml(log.render_id) + '</td>' +
                        '<td>' + new Date(log.created_at).toLocaleString() + '</td>' +
                        '<td>' + escapeHtml(log.operation) + '</td>' +
                        '<td class="status-' + escapeHtml(log.status) + '">' + escapeHtml(log.status) + '</td>' +
                        '<td>' + escapeHtml(log.error_code || '-') + '</td>' +
                        '<td>' + log.page_count + '</td>' +
                        '<td>' + log.size_bytes + '</td>' +
                        '<td>' + log.duration_ms + 'ms</td>' +
                        '</tr>';
                });
                target.innerHTML = html + '</tbody></table>';
            } catch (err) {
                target.innerHTML = '<p class="loading">Error: ' + escapeHtml(err.message) + '</p>';
            }
        }

        function authHeaders() {
            const token = localStorage.getItem('token');
            return token ? { 'Authorization': 'Bearer ' + token } : {};
        }

        document.addEventListener('DOMContentLoaded', load);
    </script>
</body>
</html>`
