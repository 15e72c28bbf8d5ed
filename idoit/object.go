package idoit

import "context"

const (
	MethodObjectCreate         = "cmdb.object.create"
	MethodObjectRead           = "cmdb.object.read"
	MethodObjectUpdate         = "cmdb.object.update"
	MethodObjectDelete         = "cmdb.object.delete"
	MethodObjectRecycle        = "cmdb.object.recycle"
	MethodObjectArchive        = "cmdb.object.archive"
	MethodObjectPurge          = "cmdb.object.purge"
	MethodObjectMarkAsTemplate = "cmdb.object.markAsTemplate"
)

// ObjectCreate creates an object of objType, given either as a constant
// such as "C__OBJTYPE__SERVER" or as a numeric type id.
func (c *Client) ObjectCreate(ctx context.Context, objType any, title string, opts *ObjectCreateOptions) (*ObjectCreateResult, error) {
	if opts == nil {
		opts = &ObjectCreateOptions{}
	}
	return call[ObjectCreateResult](ctx, c, MethodObjectCreate, Params{
		"type":        objType,
		"title":       title,
		"category":    opts.Category,
		"purpose":     opts.Purpose,
		"cmdb_status": opts.CMDBStatus,
		"description": opts.Description,
	})
}

func (c *Client) ObjectRead(ctx context.Context, id int64) (*Object, error) {
	return call[Object](ctx, c, MethodObjectRead, Params{"id": id})
}

func (c *Client) ObjectUpdate(ctx context.Context, id int64, title string) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectUpdate, Params{"id": id, "title": title})
}

// ObjectDelete moves an object to status, one of the Status* constants.
func (c *Client) ObjectDelete(ctx context.Context, id int64, status string) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectDelete, Params{"id": id, "status": status})
}

func (c *Client) ObjectRecycle(ctx context.Context, id int64) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectRecycle, Params{"object": id})
}

func (c *Client) ObjectArchive(ctx context.Context, id int64) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectArchive, Params{"object": id})
}

func (c *Client) ObjectPurge(ctx context.Context, id int64) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectPurge, Params{"object": id})
}

func (c *Client) ObjectMarkAsTemplate(ctx context.Context, id int64) (*StatusResult, error) {
	return call[StatusResult](ctx, c, MethodObjectMarkAsTemplate, Params{"object": id})
}
