package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kondzio13/alis/catalog"
	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/key"
	"github.com/kondzio13/alis/melody"
	"github.com/kondzio13/alis/midi"
	"github.com/kondzio13/alis/model"
	"github.com/kondzio13/alis/solo"
	"github.com/kondzio13/alis/token"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxBodyBytes = 8 << 20

var (
	serveAddr string
	soloStore catalog.Store
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves encode, key and solo over http",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		soloStore = openCatalog()
		handler := cors.New(cors.Options{
			AllowedMethods: []string{http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"X-Solo-Id"},
		}).Handler(NewRouter())
		logrus.WithField("addr", serveAddr).Info("Listening")
		return http.ListenAndServe(serveAddr, handler)
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/encode", HandleEncode).Methods(http.MethodPost)
	router.HandleFunc("/key", HandleKey).Methods(http.MethodPost)
	router.HandleFunc("/solo", HandleSolo).Methods(http.MethodPost)
	return router
}

func writeError(w http.ResponseWriter, status int, err error) {
	logrus.WithError(err).WithField("status", status).Debug("Request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// statusFor maps errors a caller can fix to 4xx.
func statusFor(err error) int {
	switch errors.Cause(err) {
	case key.ErrNoCandidates, melody.ErrNoMelody, solo.ErrEmptySolo:
		return http.StatusUnprocessableEntity
	case key.ErrEmptyProgression, key.ErrNotCandidate, chord.ErrInvalidChord, chord.ErrInvalidBars:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not unmarshal request body"))
		return false
	}
	return true
}

func progressionFromBody(entries []model.ProgressionEntryBody) (model.Progression, error) {
	var res model.Progression
	for _, e := range entries {
		entry, err := chord.NewProgressionEntry(e.Chord, e.Bars)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

func keyRequestFromBody(entries []model.ProgressionEntryBody, extra []string, name string) (keyRequest, error) {
	var req keyRequest
	p, err := progressionFromBody(entries)
	if err != nil {
		return req, err
	}
	e, err := chord.ParseAll(extra)
	if err != nil {
		return req, err
	}
	return keyRequest{progression: p, extra: e, key: name}, nil
}

// HandleEncode takes a midi file and answers with its melody as a primed
// sample.
func HandleEncode(w http.ResponseWriter, r *http.Request) {
	dat, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s, err := midi.ReadMidi(dat)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "not a midi file"))
		return
	}
	text, err := melody.Encode(midi.ToRows(s), melody.DefaultOptions())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, token.Corpus([]string{text}))
}

// HandleKey filters the keys a progression fits. It never picks at random:
// an ambiguous progression answers with the candidates and no key.
func HandleKey(w http.ResponseWriter, r *http.Request) {
	var input model.KeyRequestBody
	if !readJSON(w, r, &input) {
		return
	}
	req, err := keyRequestFromBody(input.Progression, input.Extra, input.Key)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	f := key.NewFinder(chord.BuildChart())
	if _, err := f.Filter(req.progression); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if f.State() == key.NeedsDisambiguation {
		if req.key != "" {
			if _, err := f.Choose(req.key); err != nil {
				writeError(w, statusFor(err), err)
				return
			}
		} else if _, err := f.Refine(req.extra); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	res := model.KeyResponse{Candidates: f.Candidates()}
	if k, ok := f.Key(); ok {
		res.Key = k.Name
		res.Minor = k.Minor
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleSolo decodes the first solo of a sample into a midi file, fitted to
// the key of the progression when one is given.
func HandleSolo(w http.ResponseWriter, r *http.Request) {
	var input model.SoloRequestBody
	if !readJSON(w, r, &input) {
		return
	}
	req, err := keyRequestFromBody(input.Progression, input.Extra, input.Key)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	k, fitted, err := pickKey(req, false, nil, nil)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	d, err := newDecoder(k, fitted, "", 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	res, err := d.Decode(input.Sample)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s, err := midi.FromRows(res.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(err, "could not write midi"))
		return
	}

	rec := catalog.NewRecord(k, req.progression, "", len(res.Notes), input.Sample)
	if soloStore != nil {
		recordSolo(r.Context(), soloStore, rec)
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Solo-Id", rec.Id)
	w.Write(buf.Bytes())
}
