package cmdb

// Record states as stored in the status column.
const (
	StatusBirth    = 1
	StatusNormal   = 2
	StatusArchived = 3
	StatusDeleted  = 4
	StatusTemplate = 6
)

var RecordStates = map[string]int{
	"C__RECORD_STATUS__BIRTH":    StatusBirth,
	"C__RECORD_STATUS__NORMAL":   StatusNormal,
	"C__RECORD_STATUS__ARCHIVED": StatusArchived,
	"C__RECORD_STATUS__DELETED":  StatusDeleted,
	"C__RECORD_STATUS__TEMPLATE": StatusTemplate,
}

// StatusPurge is accepted by cmdb.object.delete and removes the row.
const StatusPurge = "C__RECORD_STATUS__PURGE"

type ObjectType struct {
	ID    int
	Const string
	Title string
	Icon  string
}

var ObjectTypes = []ObjectType{
	{ID: 1, Const: "C__OBJTYPE__SYSTEM_SERVICE", Title: "System service", Icon: "images/icons/silk/application_osx_terminal.png"},
	{ID: 3, Const: "C__OBJTYPE__BUILDING", Title: "Building", Icon: "images/icons/silk/building.png"},
	{ID: 5, Const: "C__OBJTYPE__SERVER", Title: "Server", Icon: "images/icons/silk/server.png"},
	{ID: 10, Const: "C__OBJTYPE__CLIENT", Title: "Client", Icon: "images/icons/silk/computer.png"},
	{ID: 26, Const: "C__OBJTYPE__ROOM", Title: "Room", Icon: "images/icons/silk/door.png"},
	{ID: 53, Const: "C__OBJTYPE__PERSON", Title: "Persons", Icon: "images/icons/silk/user.png"},
}

type CMDBStatus struct {
	ID    int
	Const string
	Title string
}

var CMDBStates = []CMDBStatus{
	{ID: 5, Const: "C__CMDB_STATUS__PLANNED", Title: "planned"},
	{ID: 6, Const: "C__CMDB_STATUS__IN_OPERATION", Title: "in operation"},
	{ID: 7, Const: "C__CMDB_STATUS__DEFECT", Title: "defect"},
	{ID: 8, Const: "C__CMDB_STATUS__INOPERATIVE", Title: "inoperative"},
}

// DefaultCMDBStatus is used when cmdb.object.create gets no cmdb_status.
const DefaultCMDBStatus = 6

var GlobalCategories = map[string]string{
	"C__CATG__GLOBAL":           "General",
	"C__CATG__MODEL":            "Model",
	"C__CATG__CPU":              "CPU",
	"C__CATG__MEMORY":           "Memory",
	"C__CATG__IP":               "Host address",
	"C__CATG__LOCATION":         "Location",
	"C__CATG__CONTACT":          "Contact assignment",
	"C__CATG__OPERATING_SYSTEM": "Operating system",
}

var SpecificCategories = map[string]string{
	"C__CATS__ROOM":   "Room",
	"C__CATS__PERSON": "Persons",
}

func objectTypeByRef(ref any) (ObjectType, bool) {
	switch v := ref.(type) {
	case string:
		for _, t := range ObjectTypes {
			if t.Const == v {
				return t, true
			}
		}
	case float64:
		for _, t := range ObjectTypes {
			if t.ID == int(v) {
				return t, true
			}
		}
	}
	return ObjectType{}, false
}

func objectTypeByID(id int) ObjectType {
	for _, t := range ObjectTypes {
		if t.ID == id {
			return t
		}
	}
	return ObjectType{ID: id}
}

func cmdbStatusByRef(ref any) (CMDBStatus, bool) {
	switch v := ref.(type) {
	case nil:
		return cmdbStatusByID(DefaultCMDBStatus), true
	case string:
		for _, s := range CMDBStates {
			if s.Const == v {
				return s, true
			}
		}
	case float64:
		for _, s := range CMDBStates {
			if s.ID == int(v) {
				return s, true
			}
		}
	}
	return CMDBStatus{}, false
}

func cmdbStatusByID(id int) CMDBStatus {
	for _, s := range CMDBStates {
		if s.ID == id {
			return s
		}
	}
	return CMDBStatus{ID: id}
}

func knownStatus(status int) bool {
	for _, v := range RecordStates {
		if v == status {
			return true
		}
	}
	return false
}
