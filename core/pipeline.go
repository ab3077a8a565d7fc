package core

import (
	"context"

	"github.com/artpipe/assetgate/internal/contract"
	"github.com/artpipe/assetgate/schema"
)

// ExecuteAssetCheck runs the full QA pipeline over a loaded scene: the six
// check stages, the remediation pass, and overall status aggregation.
//
// All check stages always run; a failed stage never short-circuits the
// rest, so the report lists every problem at once. An optional intake stage
// result is prepended when the asset came through filesystem intake. The
// context is consulted between stages so a cancelled run stops early.
func ExecuteAssetCheck(
	ctx context.Context,
	cfg *contract.Config,
	scene contract.SceneContext,
	meta schema.AssetMetadata,
	intake *schema.StageResult,
) (schema.QaReport, error) {
	builder := NewReportBuilder(meta)
	if intake != nil {
		builder.AddStage(*intake)
	}

	type stageFunc func() schema.StageResult
	stageFuncs := []stageFunc{
		func() schema.StageResult { return CheckGeometry(scene, cfg.Geometry) },
		func() schema.StageResult { return CheckUVs(scene, cfg.UV) },
		func() schema.StageResult { return CheckTextures(scene, cfg.Texture) },
		func() schema.StageResult { return CheckPBR(scene, cfg.PBR) },
		func() schema.StageResult { return CheckArmature(scene, cfg.Armature) },
	}

	var checkResults []schema.StageResult
	for _, run := range stageFuncs {
		if err := ctx.Err(); err != nil {
			return schema.QaReport{}, err
		}
		checkResults = append(checkResults, run())
	}

	if err := ctx.Err(); err != nil {
		return schema.QaReport{}, err
	}
	sceneResult, perf := CheckScene(scene, cfg.Scene)
	checkResults = append(checkResults, sceneResult)

	if err := ctx.Err(); err != nil {
		return schema.QaReport{}, err
	}
	remediation := RunRemediation(scene, checkResults, cfg.Remediation)

	for _, stage := range checkResults {
		builder.AddStage(stage)
	}
	builder.AddStage(remediation)
	builder.SetPerformance(perf)

	return builder.Finalize(), nil
}
