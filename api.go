/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Generous ceiling for puzzle uploads; real .puz files are a few KB.
const maxPuzzleBody = 1 << 20

var roomNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var errInvalidRoomName = errors.New("invalid room name")

func roomParam(p httprouter.Params) (string, error) {
	name := p.ByName("room")
	if !roomNameRegexp.MatchString(name) {
		return "", errInvalidRoomName
	}
	return name, nil
}

// servePuzzleSelect handles PUT /api/crossword/:room. A JSON body selects a
// published puzzle by date and publisher; any other content type is parsed
// as an uploaded .puz file.
func servePuzzleSelect(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPuzzleBody))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "puzzle too large"})
				return
			}
			writeAPIError(w, err)
			return
		}

		var puzzle *Puzzle

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var sel struct {
				Date      string `json:"date"`
				Publisher string `json:"publisher"`
			}
			if err := json.Unmarshal(body, &sel); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed puzzle selection"})
				return
			}
			puzzle, err = loadPuzzle(cfg, sel.Date, sel.Publisher)
		} else {
			puzzle, err = parsePuz(body)
		}
		if err != nil {
			writeAPIError(w, err)
			return
		}

		if _, err := rm.SetPuzzle(cfg, roomName, puzzle); err != nil {
			writeAPIError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// serveRoomState handles GET /api/crossword/:room, returning the sanitized
// room as JSON. Reading a room also refreshes its expiration.
func serveRoomState(rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		room, err := rm.GetRoom(roomName)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, room.Sanitized())
	}
}

// serveAnswer handles PUT /api/crossword/:room/answer/:clue. The body is
// the raw answer text; anything past the configured limit is rejected
// before it reaches the room.
func serveAnswer(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(cfg.answerLimit)))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "answer too long"})
				return
			}
			writeAPIError(w, err)
			return
		}

		if _, _, err := rm.ApplyAnswer(cfg, roomName, p.ByName("clue"), string(body)); err != nil {
			writeAPIError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// serveShowClue handles GET /api/crossword/:room/show/:clue, pointing every
// connected client at a clue.
func serveShowClue(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		if err := rm.ShowClue(cfg, roomName, p.ByName("clue")); err != nil {
			writeAPIError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// serveSettings handles PUT /api/crossword/:room/settings with a partial
// settings document; omitted fields keep their current values.
func serveSettings(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
		if err != nil {
			writeAPIError(w, err)
			return
		}

		patch, err := ParseSettingsPatch(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if _, err := rm.UpdateSettings(cfg, roomName, patch); err != nil {
			writeAPIError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// serveStatusToggle handles PUT /api/crossword/:room/status, flipping the
// room between playing and paused. Complete rooms ignore the toggle but
// still answer 204.
func serveStatusToggle(cfg *Config, rm *RoomManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		roomName, err := roomParam(p)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		if _, err := rm.TogglePlayPause(cfg, roomName); err != nil {
			writeAPIError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// serveBotChannels handles GET /api/bot/channels, listing the rooms a chat
// bot should currently be joined to.
func serveBotChannels(relay *Relay) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string][]string{"channels": relay.Channels()})
	}
}

// serveBotMessage handles POST /api/bot/message. The bot forwards each chat
// line it sees; the relay answers with the reply to post back, if any.
func serveBotMessage(cfg *Config, relay *Relay) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var msg struct {
			Channel string `json:"channel"`
			User    string `json:"user"`
			Message string `json:"message"`
		}

		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed message"})
			return
		}

		if !roomNameRegexp.MatchString(msg.Channel) {
			writeAPIError(w, errInvalidRoomName)
			return
		}

		reply := relay.HandleMessage(cfg, msg.Channel, msg.User, msg.Message)

		writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}

// registerAPI wires the crossword REST surface used by the web client and
// the chat relay alike.
func registerAPI(cfg *Config, mux *httprouter.Router, rm *RoomManager, relay *Relay) {
	mux.PUT(cfg.prefix+"/api/crossword/:room", servePuzzleSelect(cfg, rm))
	mux.GET(cfg.prefix+"/api/crossword/:room", serveRoomState(rm))
	mux.PUT(cfg.prefix+"/api/crossword/:room/answer/:clue", serveAnswer(cfg, rm))
	mux.GET(cfg.prefix+"/api/crossword/:room/show/:clue", serveShowClue(cfg, rm))
	mux.PUT(cfg.prefix+"/api/crossword/:room/settings", serveSettings(cfg, rm))
	mux.PUT(cfg.prefix+"/api/crossword/:room/status", serveStatusToggle(cfg, rm))
	mux.GET(cfg.prefix+"/api/bot/channels", serveBotChannels(relay))
	mux.POST(cfg.prefix+"/api/bot/message", serveBotMessage(cfg, relay))
}
