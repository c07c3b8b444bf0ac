package lsp

import (
	"bytes"
	"encoding/json"
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

// runSession feeds a scripted client session to the server and returns every
// message it wrote back, in order.
func runSession(t *testing.T, msgs ...map[string]interface{}) []map[string]interface{} {
	t.Helper()
	var in bytes.Buffer
	enc := json.NewEncoder(&in)
	for _, m := range msgs {
		tassert.NoError(t, enc.Encode(m))
	}
	var out bytes.Buffer
	s := NewServer(&in, &out)
	tassert.NoError(t, s.Run())

	var res []map[string]interface{}
	dec := json.NewDecoder(&out)
	for {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			break
		}
		res = append(res, m)
	}
	return res
}

func initializeMsg() map[string]interface{} {
	return map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": "initialize",
		"params": map[string]interface{}{"rootUri": "file:///tmp"},
	}
}

func didOpenMsg(text string) map[string]interface{} {
	return map[string]interface{}{
		"jsonrpc": "2.0", "method": "textDocument/didOpen",
		"params": map[string]interface{}{
			"textDocument": map[string]interface{}{
				"uri": "file:///main.mml", "languageId": "minml", "version": 1, "text": text,
			},
		},
	}
}

func TestServerInitialize(t *testing.T) {
	res := runSession(t, initializeMsg())
	tassert.Len(t, res, 1)
	caps := res[0]["result"].(map[string]interface{})["capabilities"].(map[string]interface{})
	tassert.Equal(t, true, caps["hoverProvider"])
}

func TestServerPublishesDiagnostics(t *testing.T) {
	res := runSession(t, initializeMsg(), didOpenMsg("let x = in x"))
	tassert.Len(t, res, 2)
	tassert.Equal(t, "textDocument/publishDiagnostics", res[1]["method"])
	params := res[1]["params"].(map[string]interface{})
	diagnostics := params["diagnostics"].([]interface{})
	tassert.Len(t, diagnostics, 1)
	msg := diagnostics[0].(map[string]interface{})["message"].(string)
	tassert.Contains(t, msg, "syntax error")
}

func TestServerClearsDiagnostics(t *testing.T) {
	res := runSession(t, initializeMsg(), didOpenMsg("fn x => x"))
	tassert.Len(t, res, 2)
	params := res[1]["params"].(map[string]interface{})
	tassert.Empty(t, params["diagnostics"])
}

func TestServerHover(t *testing.T) {
	hover := map[string]interface{}{
		"jsonrpc": "2.0", "id": 2, "method": "textDocument/hover",
		"params": map[string]interface{}{
			"textDocument": map[string]interface{}{"uri": "file:///main.mml"},
			"position":     map[string]interface{}{"line": 0, "character": 11},
		},
	}
	res := runSession(t, initializeMsg(), didOpenMsg("fn b => if b then 1 else 2"), hover)
	tassert.Len(t, res, 3)
	result := res[2]["result"].(map[string]interface{})
	contents := result["contents"].([]interface{})
	tassert.Len(t, contents, 1)
	marked := contents[0].(map[string]interface{})
	tassert.Equal(t, "Bool", marked["value"])
}

func TestServerTypeErrorDiagnostic(t *testing.T) {
	res := runSession(t, initializeMsg(), didOpenMsg("if 1 then 1 else 2"))
	params := res[1]["params"].(map[string]interface{})
	diagnostics := params["diagnostics"].([]interface{})
	tassert.Len(t, diagnostics, 1)
	msg := diagnostics[0].(map[string]interface{})["message"].(string)
	tassert.Contains(t, msg, "type mismatch")
}
