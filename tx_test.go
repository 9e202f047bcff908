package onesig

import (
	"testing"

	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/weavetest/assert"
)

type demoMsg struct {
	Num int
	err error
}

func (demoMsg) Path() string               { return "demo/msg" }
func (m demoMsg) Validate() error          { return m.err }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("demo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

var _ Msg = (*demoMsg)(nil)

type otherMsg struct {
	demoMsg
}

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    func() interface{}
		wantErr *errors.Error
	}{
		"success": {
			tx:   demoTx{msg: &demoMsg{Num: 3}},
			dest: func() interface{} { var m *demoMsg; return &m },
		},
		"tx error": {
			tx:      demoTx{err: errors.ErrMsg.New("broken")},
			dest:    func() interface{} { var m *demoMsg; return &m },
			wantErr: errors.ErrMsg,
		},
		"no message": {
			tx:      demoTx{},
			dest:    func() interface{} { var m *demoMsg; return &m },
			wantErr: errors.ErrMsg,
		},
		"destination not a pointer": {
			tx:      demoTx{msg: &demoMsg{}},
			dest:    func() interface{} { return demoMsg{} },
			wantErr: errors.ErrHuman,
		},
		"type mismatch": {
			tx:      demoTx{msg: &demoMsg{}},
			dest:    func() interface{} { var m *otherMsg; return &m },
			wantErr: errors.ErrType,
		},
		"invalid message": {
			tx:      demoTx{msg: &demoMsg{err: errors.ErrEmpty.New("num")}},
			dest:    func() interface{} { var m *demoMsg; return &m },
			wantErr: errors.ErrEmpty,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dest := tc.dest()
			err := LoadMsg(tc.tx, dest)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, 3, (*dest.(**demoMsg)).Num)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", GetPath(demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(demoTx{}))
	assert.Equal(t, "(missing)", GetPath(demoTx{msg: &demoMsg{}, err: errors.ErrMsg}))
}
