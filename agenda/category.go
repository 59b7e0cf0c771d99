package agenda

import (
	"github.com/Vitexus/pohoda/options"
	"github.com/Vitexus/pohoda/xmlnode"
)

// Registry name of the Category kind and the element that starts one Category
// record in a response document.
const (
	KindCategory       = "Category"
	CategoryImportRoot = "ctg:category"
)

var categoryFields = []string{"name", "description", "sequence", "displayed", "picture", "note"}

// Category is an e-shop product category with nested subcategories.
type Category struct {
	base
	children []*Category
}

// NewCategory validates data against the category contract.
func NewCategory(data map[string]any, ico string) (*Category, error) {
	b, err := newBase(KindCategory, ico, data, configureCategory)
	if err != nil {
		return nil, err
	}
	return &Category{base: b}, nil
}

func configureCategory(r *options.Resolver) {
	r.SetDefined(categoryFields...)
	r.SetRequired("name", "sequence", "displayed")
	r.SetDefault("displayed", true)
	r.SetValidation("name", "max=48")
	r.SetValidation("sequence", "numeric")
}

func (c *Category) ImportRoot() string { return CategoryImportRoot }

// AddSubcategory appends child to the ordered subcategory list.
func (c *Category) AddSubcategory(child *Category) {
	c.children = append(c.children, child)
}

// Subcategories returns the direct children in insertion order.
func (c *Category) Subcategories() []*Category {
	return append([]*Category(nil), c.children...)
}

func (c *Category) XML() (*xmlnode.Element, error) {
	root := xmlnode.New("ctg:categoryDetail").SetAttr("version", Version)
	if err := c.RenderInto(root); err != nil {
		return nil, err
	}
	return root, nil
}

// RenderInto appends the category with its fields as child elements and,
// when present, a ctg:subCategories group.
func (c *Category) RenderInto(parent *xmlnode.Element) error {
	if err := c.require("name", "sequence", "displayed"); err != nil {
		return err
	}

	item := parent.AddChild("ctg:category")
	c.addElements(item, "ctg", categoryFields...)

	if len(c.children) == 0 {
		return nil
	}
	group := item.AddChild("ctg:subCategories")
	for _, child := range c.children {
		if err := child.RenderInto(group); err != nil {
			return err
		}
	}
	return nil
}
