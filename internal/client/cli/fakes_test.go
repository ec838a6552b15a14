package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// ---- output capture ----

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return "?"
	}
}

func joined(out *[]string) string { return strings.Join(*out, "\n") }

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// stubAnswers feeds successive answers to getSimpleText.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

// ---- fake session ----

type fakeSession struct {
	initialized bool
	user        *models.User
	token       *string

	// authOnInit is the session Wait finds once the restore settles.
	authOnInit *models.User
	waits      int
	started    bool
}

func (f *fakeSession) IsAuthenticated() bool { return f.token != nil }
func (f *fakeSession) IsInitialized() bool   { return f.initialized }
func (f *fakeSession) Start(context.Context) { f.started = true }

func (f *fakeSession) Wait(context.Context) error {
	f.waits++
	if !f.initialized {
		f.initialized = true
		if f.authOnInit != nil {
			f.set(*f.authOnInit)
		}
	}
	return nil
}

func (f *fakeSession) Snapshot() session.State {
	return session.State{User: f.user, AccessToken: f.token, Initialized: f.initialized}
}

func (f *fakeSession) set(u models.User) {
	tok := "tok"
	f.user, f.token = &u, &tok
}

func (f *fakeSession) clear() { f.user, f.token = nil, nil }

// ---- fake services ----

type fakeAuth struct {
	sess *fakeSession

	regUser   string
	regPass   []byte
	regErr    error
	loginUser string
	loginPass []byte
	loginErr  error
	logins    int
	logouts   int
	closed    bool

	waitsAtClose int
}

func (f *fakeAuth) Register(_ context.Context, email string, pass []byte) (*models.User, error) {
	f.regUser, f.regPass = email, append([]byte(nil), pass...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	u := models.User{ID: 1, Email: email}
	f.sess.set(u)
	return &u, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (*models.User, error) {
	f.logins++
	f.loginUser, f.loginPass = email, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := models.User{ID: 7, Email: email}
	f.sess.set(u)
	return &u, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.sess.clear()
	return nil
}

func (f *fakeAuth) CurrentUser() (*models.User, bool) {
	if f.sess.token == nil || f.sess.user == nil {
		return nil, false
	}
	return f.sess.user, true
}

func (f *fakeAuth) Ping(context.Context) error { return nil }

func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	f.waitsAtClose = f.sess.waits
	return nil
}

type fakeCatalog struct {
	services.CatalogService

	products []models.Product
	created  *models.NewProduct
	deleted  []int
	err      error
}

func (f *fakeCatalog) Products(context.Context) ([]models.Product, error) { return f.products, f.err }

func (f *fakeCatalog) Product(_ context.Context, id int) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, errors.New("product not found")
}

func (f *fakeCatalog) AddProduct(_ context.Context, p models.NewProduct) (*models.Product, error) {
	f.created = &p
	return &models.Product{ID: 50, Name: p.Name}, nil
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeCart struct {
	services.CartService

	lines   []models.CartLine
	open    bool
	pushed  int
	pushErr error
	remote  *models.Cart
}

func (f *fakeCart) Add(_ context.Context, p models.Product, qty int) (*models.CartLine, error) {
	if qty <= 0 {
		qty = 1
	}
	for i := range f.lines {
		if f.lines[i].Product.ID == p.ID {
			f.lines[i].Quantity += qty
			return &f.lines[i], nil
		}
	}
	f.lines = append(f.lines, models.CartLine{Product: p, Quantity: qty})
	return &f.lines[len(f.lines)-1], nil
}

func (f *fakeCart) Items(context.Context) ([]models.CartLine, error) { return f.lines, nil }

func (f *fakeCart) Count(context.Context) (int, error) {
	n := 0
	for _, l := range f.lines {
		n += l.Quantity
	}
	return n, nil
}

func (f *fakeCart) Open()        { f.open = true }
func (f *fakeCart) Close()       { f.open = false }
func (f *fakeCart) IsOpen() bool { return f.open }

func (f *fakeCart) Push(context.Context) (int, error) {
	if f.pushErr != nil {
		return 0, f.pushErr
	}
	n := len(f.lines)
	f.lines = nil
	f.pushed += n
	return n, nil
}

func (f *fakeCart) Remote(context.Context) (*models.Cart, error) {
	if f.remote == nil {
		return &models.Cart{Items: []models.CartItem{}}, nil
	}
	return f.remote, nil
}

type testApp struct {
	*App
	sess    *fakeSession
	auth    *fakeAuth
	catalog *fakeCatalog
	cart    *fakeCart
}

func newTestApp(sess *fakeSession) *testApp {
	auth := &fakeAuth{sess: sess}
	catalog := &fakeCatalog{}
	crt := &fakeCart{}
	a := newApp(auth, catalog, crt, sess, bufio.NewReader(strings.NewReader("")))
	return &testApp{App: a, sess: sess, auth: auth, catalog: catalog, cart: crt}
}
