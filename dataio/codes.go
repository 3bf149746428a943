package dataio

import "github.com/robert-malhotra/go-nxgraph/result"

// Orchestrator codes.
const (
	CodeNoDataStructure result.Code = -1
	CodeMissingTag      result.Code = -2
	CodeUnknownType     result.Code = -3
	CodeKindMismatch    result.Code = -4
	CodeNoWriter        result.Code = -5
	CodeFormatVersion   result.Code = -8
	CodeWriteTarget     result.Code = -700
	CodeNameCollision   result.Code = -701
)

// Warning codes raised while loading.
const (
	CodeUnresolvedLink  result.Code = -6
	CodeParentMismatch  result.Code = -7
	CodeDuplicateObject result.Code = -9
)

// Base group.
const (
	CodeGroupOpen   result.Code = -200
	CodeGroupCreate result.Code = -201
	CodeObjectAttrs result.Code = -202
	CodeGroupImport result.Code = -203
)

// Geometry layers.
const (
	CodeGeometryOpen   result.Code = -510
	CodeGeometryCreate result.Code = -511
	CodeGeometrySlot   result.Code = -512

	CodeImageGroup   result.Code = -520
	CodeImageDims    result.Code = -521
	CodeImageSpacing result.Code = -522
	CodeImageOrigin  result.Code = -523

	CodeRectGridGroup result.Code = -530
	CodeRectGridDims  result.Code = -531
	CodeRectGridSlot  result.Code = -532

	CodeNodeGeomOpen   result.Code = -540
	CodeNodeGeomCreate result.Code = -541
	CodeNodeGeomSlot   result.Code = -542
)

// Leaf strategies.
const (
	CodeArrayOpen   result.Code = -400
	CodeArrayData   result.Code = -401
	CodeArrayShape  result.Code = -402
	CodeArrayImport result.Code = -403
	CodeArrayType   result.Code = -777

	CodeStringRead  result.Code = -404
	CodeStringWrite result.Code = -405

	CodeNeighborRead   result.Code = -505
	CodeNeighborCounts result.Code = -506
	CodeNeighborWrite  result.Code = -507

	CodeScalarRead   result.Code = -458
	CodeScalarImport result.Code = -459
	CodeScalarWrite  result.Code = -460

	CodeTupleDimsRead  result.Code = -1550
	CodeTupleDimsWrite result.Code = -1551
)
