package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/inklet/inklet/backend-go/internal/document"
	"github.com/inklet/inklet/backend-go/internal/drawing"
)

// DocumentLoader fetches the latest persisted diagram for a project.
type DocumentLoader func(projectID string) (*document.Diagram, error)

// DocumentSaver persists the current diagram for a project.
type DocumentSaver func(projectID string, doc *document.Diagram) error

// Room is one project's live editing session: the clients in it, their
// presence, and the authoritative editor state.
type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager

	mu        sync.Mutex
	editor    *drawing.Editor
	meta      *document.Diagram
	serverSeq int64
	dirty     bool
}

func newRoom(projectID string, editor *drawing.Editor, meta *document.Diagram) *Room {
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
		editor:    editor,
		meta:      meta,
	}
}

// Apply runs one operation against the room's editor and returns the new
// server sequence number.
func (r *Room) Apply(op Operation) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.applyLocked(op); err != nil {
		return 0, err
	}

	r.serverSeq++
	r.dirty = true
	return r.serverSeq, nil
}

// Snapshot captures the room's current document.
func (r *Room) Snapshot() *document.Diagram {
	r.mu.Lock()
	defer r.mu.Unlock()
	return document.Snapshot(r.editor.Scene(), r.meta)
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopped    chan struct{}

	loader    DocumentLoader
	saver     DocumentSaver
	undoDepth int
}

func NewHub(loader DocumentLoader, saver DocumentSaver, undoDepth int) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
		loader:     loader,
		saver:      saver,
		undoDepth:  undoDepth,
	}
}

func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			h.saveAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop ends the run loop and persists every dirty room.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		var err error
		room, err = h.openRoom(client.ProjectID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("open room", "project", client.ProjectID, "error", err)
			client.SendError("failed to load document")
			close(client.send)
			return
		}
		h.rooms[client.ProjectID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	welcomePayload, _ := json.Marshal(WelcomePayload{
		ClientID:  client.ClientID,
		UserID:    client.UserID,
		ProjectID: client.ProjectID,
	})
	client.Send(&Message{Type: TypeWelcome, Payload: welcomePayload})

	room.mu.Lock()
	doc := document.Snapshot(room.editor.Scene(), room.meta)
	seq := room.serverSeq
	room.mu.Unlock()

	syncPayload, _ := json.Marshal(DocSyncPayload{Document: doc, ServerSeq: seq})
	client.Send(&Message{Type: TypeDocSync, Payload: syncPayload})

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	h.broadcastToRoom(client.ProjectID, &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) openRoom(projectID string) (*Room, error) {
	editor := drawing.NewEditor(h.undoDepth)

	var meta *document.Diagram
	if h.loader != nil {
		doc, err := h.loader(projectID)
		if err != nil {
			return nil, err
		}
		scene, err := document.BuildScene(doc, editor.Sheet())
		if err != nil {
			return nil, err
		}
		editor.SetScene(scene)
		meta = doc
	} else {
		meta = document.NewEmptyDiagram(projectID)
	}

	return newRoom(projectID, editor, meta), nil
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	last := len(room.clients) == 0
	if last {
		delete(h.rooms, client.ProjectID)
	}
	h.mu.Unlock()

	if last {
		h.saveRoom(room)
	} else {
		leavePayload, _ := json.Marshal(PresenceLeavePayload{UserID: client.UserID})
		h.broadcastToRoom(client.ProjectID, &Message{
			Type:    TypePresenceLeave,
			UserID:  client.UserID,
			Payload: leavePayload,
		}, "")
	}

	slog.Info("client left", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) saveRoom(room *Room) {
	room.mu.Lock()
	dirty := room.dirty
	room.dirty = false
	room.mu.Unlock()
	if !dirty || h.saver == nil {
		return
	}

	if err := h.saver(room.projectID, room.Snapshot()); err != nil {
		slog.Error("save document", "project", room.projectID, "error", err)
		return
	}
	slog.Info("document saved", "project", room.projectID)
}

func (h *Hub) saveAll() {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.Unlock()

	for _, room := range rooms {
		h.saveRoom(room)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeOpSubmit:
		h.handleOperation(sender, msg)
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleOperation(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid operation payload", "error", err, "user", sender.UserID)
		return
	}
	op := submit.Operation

	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	seq, err := room.Apply(op)
	if err != nil {
		nackPayload, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nackPayload})
		slog.Debug("operation rejected", "op", op.Type, "user", sender.UserID, "error", err)
		return
	}

	ackPayload, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       seq,
		ServerTimestamp: time.Now().UnixMilli(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: seq,
	})
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Seq:     seq,
		Payload: broadcastPayload,
	}, sender.ClientID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	outPayload, _ := json.Marshal(presence)
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}, sender.ClientID)
}

func (h *Hub) broadcastToRoom(projectID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[projectID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
