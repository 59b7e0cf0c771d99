package agenda

import "sort"

// Namespace binds a prefix used in fragments to its schema URI.
type Namespace struct {
	Prefix string
	URI    string
}

var namespaces = map[string]string{
	"adb": "http://www.stormware.cz/schema/version_2/addressbook.xsd",
	"con": "http://www.stormware.cz/schema/version_2/contract.xsd",
	"ctg": "http://www.stormware.cz/schema/version_2/category.xsd",
	"dat": "http://www.stormware.cz/schema/version_2/data.xsd",
	"ftr": "http://www.stormware.cz/schema/version_2/filter.xsd",
	"inv": "http://www.stormware.cz/schema/version_2/invoice.xsd",
	"ipm": "http://www.stormware.cz/schema/version_2/intParam.xsd",
	"lst": "http://www.stormware.cz/schema/version_2/list.xsd",
	"ord": "http://www.stormware.cz/schema/version_2/order.xsd",
	"pre": "http://www.stormware.cz/schema/version_2/prevodka.xsd",
	"str": "http://www.stormware.cz/schema/version_2/storage.xsd",
	"stk": "http://www.stormware.cz/schema/version_2/stock.xsd",
	"typ": "http://www.stormware.cz/schema/version_2/type.xsd",
	"vyd": "http://www.stormware.cz/schema/version_2/vydejka.xsd",
}

// Namespaces returns the fixed prefix bindings sorted by prefix. The
// returned slice is a copy.
func Namespaces() []Namespace {
	out := make([]Namespace, 0, len(namespaces))
	for p, u := range namespaces {
		out = append(out, Namespace{Prefix: p, URI: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// NamespaceURI returns the schema URI bound to prefix.
func NamespaceURI(prefix string) (string, bool) {
	u, ok := namespaces[prefix]
	return u, ok
}
