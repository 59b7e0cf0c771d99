package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/errdefs"
)

const storageResponse = `<?xml version="1.0" encoding="UTF-8"?>
<rsp:responsePack xmlns:rsp="http://www.stormware.cz/schema/version_2/response.xsd"
    xmlns:lst="http://www.stormware.cz/schema/version_2/list.xsd"
    xmlns:str="http://www.stormware.cz/schema/version_2/storage.xsd"
    version="2.0" id="001" state="ok">
  <rsp:responsePackItem version="2.0" id="001" state="ok">
    <lst:listStorage version="2.0" state="ok">
      <lst:itemStorage code="MAIN" name="Main">
        <str:subStorages>
          <lst:itemStorage code="NESTED"/>
        </str:subStorages>
      </lst:itemStorage>
      <!-- between items -->
      <lst:itemStorage code="B"/>
    </lst:listStorage>
  </rsp:responsePackItem>
  <rsp:responsePackItem version="2.0" id="002" state="ok">
    <lst:listStorage version="2.0" state="ok">
      <lst:itemStorage code="C"/>
    </lst:listStorage>
  </rsp:responsePackItem>
</rsp:responsePack>`

func readAll(t *testing.T, r *Reader) []*Fragment {
	t.Helper()
	var out []*Fragment
	for {
		f, err := r.Next()
		assert.NilError(t, err)
		if f == nil {
			return out
		}
		out = append(out, f)
	}
}

func codes(t *testing.T, frags []*Fragment) []string {
	t.Helper()
	var out []string
	for _, f := range frags {
		el, err := f.Element()
		assert.NilError(t, err)
		code, _ := el.Attr("code")
		out = append(out, code)
	}
	return out
}

func TestReaderYieldsRecordsInOrder(t *testing.T) {
	r := NewReader(agenda.DefaultRegistry())
	assert.NilError(t, r.Open(strings.NewReader(storageResponse), agenda.KindStorage))

	frags := readAll(t, r)
	assert.Check(t, is.DeepEqual(codes(t, frags), []string{"MAIN", "B", "C"}))

	f, err := r.Next()
	assert.NilError(t, err)
	assert.Check(t, f == nil, "exhausted reader keeps returning nil")
}

func TestReaderFragmentIsStandalone(t *testing.T) {
	r := NewReader(nil)
	assert.NilError(t, r.Open(strings.NewReader(storageResponse), agenda.KindStorage))

	f, err := r.Next()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(f.Name, "lst:itemStorage"))

	el, err := f.Element()
	assert.NilError(t, err)
	for _, prefix := range []string{"rsp", "lst", "str"} {
		_, ok := el.Attr("xmlns:" + prefix)
		assert.Check(t, ok, "fragment lacks binding for %s", prefix)
	}
	nested := el.First("str:subStorages").Find("lst:itemStorage")
	assert.Assert(t, is.Len(nested, 1))
	code, _ := nested[0].Attr("code")
	assert.Check(t, is.Equal(code, "NESTED"))

	var decoded struct {
		Code string `xml:"code,attr"`
		Name string `xml:"name,attr"`
		Subs []struct {
			Code string `xml:"code,attr"`
		} `xml:"subStorages>itemStorage"`
	}
	assert.NilError(t, f.Decode(&decoded))
	assert.Check(t, is.Equal(decoded.Code, "MAIN"))
	assert.Check(t, is.Equal(decoded.Name, "Main"))
	assert.Check(t, is.Len(decoded.Subs, 1))
}

func TestReaderNoMatchingElements(t *testing.T) {
	r := NewReader(nil)
	src := `<rsp:responsePack xmlns:rsp="urn:rsp"><rsp:responsePackItem state="ok"/></rsp:responsePack>`
	assert.NilError(t, r.Open(strings.NewReader(src), agenda.KindStorage))

	f, err := r.Next()
	assert.NilError(t, err)
	assert.Check(t, f == nil)
}

func TestReaderUnknownKindDoesNoIO(t *testing.T) {
	r := NewReader(nil)

	err := r.OpenFile(filepath.Join(t.TempDir(), "does-not-exist.xml"), "NoSuchKind")
	assert.Check(t, errdefs.IsUnknownEntityKind(err))
	assert.Check(t, !errdefs.IsIOOpen(err))

	err = r.Open(strings.NewReader(storageResponse), "NoSuchKind")
	assert.Check(t, errdefs.IsUnknownEntityKind(err))

	err = r.OpenFile(filepath.Join(t.TempDir(), "does-not-exist.xml"), agenda.KindStorage)
	assert.Check(t, errdefs.IsIOOpen(err))
}

func TestReaderStateContract(t *testing.T) {
	r := NewReader(nil)
	_, err := r.Next()
	assert.Check(t, errdefs.IsInvalidState(err))

	assert.NilError(t, r.Open(strings.NewReader(storageResponse), agenda.KindStorage))
	err = r.Open(strings.NewReader(storageResponse), agenda.KindStorage)
	assert.Check(t, errdefs.IsInvalidState(err))

	assert.NilError(t, r.Close())
	f, err := r.Next()
	assert.NilError(t, err)
	assert.Check(t, f == nil)
}

func TestReaderMalformedRecord(t *testing.T) {
	r := NewReader(nil)
	src := `<lst:listStorage xmlns:lst="urn:lst"><lst:itemStorage code="A"><oops></lst:itemStorage></lst:listStorage>`
	assert.NilError(t, r.Open(strings.NewReader(src), agenda.KindStorage))

	_, err := r.Next()
	assert.Check(t, errdefs.IsMalformedFragment(err))

	_, again := r.Next()
	assert.Check(t, errdefs.IsMalformedFragment(again), "a failed reader stays failed")
}

func TestReaderMalformedAfterRecordReportedOnNextCall(t *testing.T) {
	r := NewReader(nil)
	src := `<lst:listStorage xmlns:lst="urn:lst"><lst:itemStorage code="A"/><lst:x></lst:y></lst:listStorage>`
	assert.NilError(t, r.Open(strings.NewReader(src), agenda.KindStorage))

	f, err := r.Next()
	assert.NilError(t, err)
	assert.Check(t, f != nil)

	_, err = r.Next()
	assert.Check(t, errdefs.IsMalformedFragment(err))
}

// dataPackItemKind lets a written dataPack be read back item by item.
var dataPackItemKind = agenda.Kind{
	Name:       "DataPackItem",
	ImportRoot: "dat:dataPackItem",
	New: func(data map[string]any, ico string) (agenda.Agenda, error) {
		return agenda.NewStorage(data, ico)
	},
}

func TestRoundTripPreservesItemOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testICO)
	assert.NilError(t, w.Open(&buf, "rt", ""))
	for _, id := range []string{"I1", "I2", "I3"} {
		assert.NilError(t, w.AddItem(id, storage(t, map[string]any{"code": id})))
	}
	assert.NilError(t, w.Close())

	r := NewReader(agenda.NewRegistry(dataPackItemKind))
	assert.NilError(t, r.Open(bytes.NewReader(buf.Bytes()), "DataPackItem"))

	var ids []string
	for _, f := range readAll(t, r) {
		el, err := f.Element()
		assert.NilError(t, err)
		id, _ := el.Attr("id")
		ids = append(ids, id)
	}
	assert.Check(t, is.DeepEqual(ids, []string{"I1", "I2", "I3"}))
}

func TestRoundTripNestedCategoriesAreNotSiblings(t *testing.T) {
	mk := func(name string, seq int) *agenda.Category {
		c, err := agenda.NewCategory(map[string]any{"name": name, "sequence": seq}, testICO)
		assert.NilError(t, err)
		return c
	}
	shoes := mk("Shoes", 1)
	shoes.AddSubcategory(mk("Boots", 1))
	shoes.AddSubcategory(mk("Sandals", 2))
	hats := mk("Hats", 2)

	dir := t.TempDir()
	path := filepath.Join(dir, "categories.xml")
	w := NewWriter(testICO)
	assert.NilError(t, w.Create(path, "cat", ""))
	assert.NilError(t, w.AddItem("1", shoes))
	assert.NilError(t, w.AddItem("2", hats))
	assert.NilError(t, w.Close())

	r := NewReader(nil)
	assert.NilError(t, r.OpenFile(path, agenda.KindCategory))
	defer r.Close()

	frags := readAll(t, r)
	assert.Assert(t, is.Len(frags, 2))

	first, err := frags[0].Element()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(first.First("ctg:name").Text, "Shoes"))
	assert.Check(t, is.Len(first.First("ctg:subCategories").Find("ctg:category"), 2))

	second, err := frags[1].Element()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(second.First("ctg:name").Text, "Hats"))

	_, err = os.Stat(path)
	assert.NilError(t, err)
}
