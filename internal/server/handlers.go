// Package server exposes HTTP handlers, including WebSocket upgrades, health
// checks, the roster snapshot, and the built-in chat page.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// WebSocketHandler handles WebSocket upgrade requests. It resolves the
// caller's identity, upgrades the connection, opens a room session for it,
// and starts the client's read/write pumps.
func (s *Server) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	verified, err := s.identity.Identify(r)
	if err != nil {
		s.log.Info("rejected upgrade with invalid identity", zap.String("addr", r.RemoteAddr), zap.Error(err))
		http.Error(w, "Invalid identity token.", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, s.room, r.RemoteAddr, s.cfg, s.log)

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	id, err := s.room.Connect(ctx, client, verified)
	if err != nil {
		s.log.Warn("room refused connection", zap.String("addr", r.RemoteAddr), zap.Error(err))
		client.Close()
		client.closeConnection()
		return
	}
	client.id = id

	s.pumps.Add(2)
	go func() {
		defer s.pumps.Done()
		client.writePump()
	}()
	go func() {
		defer s.pumps.Done()
		client.readPump()
	}()
}

// RosterHandler serves the current roster as JSON.
func (s *Server) RosterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
		return
	}

	names, err := s.room.Roster(r.Context())
	if err != nil {
		http.Error(w, "Room unavailable.", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RosterResponse{Names: names}); err != nil {
		s.log.Error("writing roster response", zap.Error(err))
	}
}

// HealthHandler provides a simple health check endpoint that returns server status.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "chatroom server is running!")
}

// ChatPageHandler serves a small browser client for the room.
func ChatPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = fmt.Fprint(w, chatPage)
}

const chatPage = `<!DOCTYPE html>
<html>
<head>
    <title>Chatroom</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #layout { display: flex; gap: 20px; }
        #messages {
            border: 1px solid #ccc;
            height: 300px;
            width: 480px;
            padding: 10px;
            overflow-y: scroll;
            background-color: #f9f9f9;
        }
        #roster { border: 1px solid #ccc; width: 160px; padding: 10px; }
        input[type="text"] { width: 300px; padding: 5px; margin-right: 10px; }
        button { padding: 5px 15px; background-color: #007cba; color: white; border: none; cursor: pointer; }
        button:disabled { background-color: #999; }
        .status { margin: 10px 0; padding: 5px; border-radius: 3px; }
        .connected { background-color: #d4edda; color: #155724; }
        .disconnected { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <h1>Chatroom</h1>

    <div id="status" class="status disconnected">Disconnected</div>

    <div>
        <input type="text" id="nameInput" placeholder="Pick a name...">
        <button id="joinButton" onclick="join()" disabled>Join</button>
    </div>

    <div id="layout">
        <div>
            <div id="messages"></div>
            <select id="target"><option>Global Chat</option></select>
            <input type="text" id="messageInput" placeholder="Type a message..." disabled>
            <button id="sendButton" onclick="sendMessage()" disabled>Send</button>
        </div>
        <ul id="roster"></ul>
    </div>

    <script>
        const everyone = 'Global Chat';
        const messagesDiv = document.getElementById('messages');
        const nameInput = document.getElementById('nameInput');
        const joinButton = document.getElementById('joinButton');
        const messageInput = document.getElementById('messageInput');
        const sendButton = document.getElementById('sendButton');
        const targetSelect = document.getElementById('target');
        const rosterList = document.getElementById('roster');
        const statusDiv = document.getElementById('status');

        let connectionId = null;
        let myName = null;

        const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
        const ws = new WebSocket(scheme + location.host + '/ws' + location.search);

        function addLine(text, color) {
            const line = document.createElement('div');
            line.style.margin = '5px 0';
            line.style.color = color || 'gray';
            line.textContent = text;
            messagesDiv.appendChild(line);
            messagesDiv.scrollTop = messagesDiv.scrollHeight;
        }

        function send(event, data) {
            ws.send(JSON.stringify({ event: event, data: data }));
        }

        function renderRoster(names) {
            rosterList.innerHTML = '';
            const selected = targetSelect.value;
            targetSelect.innerHTML = '';
            [everyone].concat(names.filter(n => n !== myName)).forEach(function(n) {
                const opt = document.createElement('option');
                opt.textContent = n;
                targetSelect.appendChild(opt);
            });
            targetSelect.value = selected;
            names.forEach(function(n) {
                const li = document.createElement('li');
                li.textContent = n;
                rosterList.appendChild(li);
            });
            if (myName && names.includes(myName)) {
                messageInput.disabled = false;
                sendButton.disabled = false;
                joinButton.disabled = true;
                nameInput.disabled = true;
            }
        }

        ws.onopen = function() {
            statusDiv.textContent = 'Connected';
            statusDiv.className = 'status connected';
        };

        ws.onmessage = function(event) {
            const msg = JSON.parse(event.data);
            switch (msg.event) {
            case 'announce-connection':
                if (connectionId === null) {
                    connectionId = msg.data.connectionId;
                    if (msg.data.suggestedName) {
                        nameInput.value = msg.data.suggestedName;
                    }
                    joinButton.disabled = false;
                }
                break;
            case 'roster-update':
                renderRoster(msg.data.names || []);
                break;
            case 'join-rejected':
                addLine('Join rejected: ' + msg.data.reason, 'red');
                myName = null;
                break;
            case 'chat':
                const scope = msg.data.targetName === everyone ? '' : ' (to ' + msg.data.targetName + ')';
                addLine(msg.data.senderName + scope + ': ' + msg.data.body, 'green');
                break;
            }
        };

        ws.onclose = function() {
            statusDiv.textContent = 'Disconnected';
            statusDiv.className = 'status disconnected';
            messageInput.disabled = true;
            sendButton.disabled = true;
            joinButton.disabled = true;
        };

        function join() {
            const name = nameInput.value.trim();
            if (name && connectionId) {
                myName = name;
                send('join', { name: name, connectionId: connectionId });
            }
        }

        function sendMessage() {
            const body = messageInput.value.trim();
            if (body) {
                send('chat', { targetName: targetSelect.value, senderName: myName, body: body });
                messageInput.value = '';
            }
        }

        messageInput.addEventListener('keypress', function(e) {
            if (e.key === 'Enter') {
                sendMessage();
            }
        });
    </script>
</body>
</html>`
