package entity

import (
	"bytes"
	"encoding/json"
)

// StepOutcome é um par nome→aprovado preservando a ordem de execução.
type StepOutcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// OrderedResults serializa como um objeto JSON cujas chaves seguem a ordem de
// execução dos steps. Um map do Go ordenaria as chaves alfabeticamente, o que
// quebraria a legibilidade do relatório.
type OrderedResults []StepOutcome

// MarshalJSON implements json.Marshaler.
func (r OrderedResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, outcome := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(outcome.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(outcome.Passed)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. A ordem original das chaves é
// preservada lendo o objeto token a token.
func (r *OrderedResults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // '{'
		return err
	}
	var out OrderedResults
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var passed bool
		if err := dec.Decode(&passed); err != nil {
			return err
		}
		out = append(out, StepOutcome{Name: keyTok.(string), Passed: passed})
	}
	*r = out
	return nil
}

// Summary agrega as contagens do run.
type Summary struct {
	Total       int    `json:"total"`
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}

// StepError registra a mensagem capturada de um step que falhou.
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Report é o relatório estruturado de um run completo. É derivado uma única
// vez ao final do run e nunca mutado depois; o adapter de export o persiste.
type Report struct {
	Timestamp string         `json:"timestamp"`
	Region    string         `json:"region"`
	Account   string         `json:"account,omitempty"`
	Results   OrderedResults `json:"results"`
	Summary   Summary        `json:"summary"`
	Errors    []StepError    `json:"errors"`
}

// AllPassed informa se todos os steps tentados passaram.
func (r Report) AllPassed() bool {
	return r.Summary.Failed == 0 && r.Summary.Total > 0
}
